package model

// Document is one loaded source file, consumed once by the chunker.
type Document struct {
	Source string // stable source identifier (file name)
	Text   string
}

// Chunk is a contiguous slice of a document's text plus its origin.
type Chunk struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Index  int    `json:"index"`
}
