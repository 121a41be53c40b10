package model

// IndexEntry is the stored unit of the vector index: one embedded chunk.
type IndexEntry struct {
	Vector []float32
	Text   string
	Source string
}

// SearchHit is one retrieved entry, ordered by descending similarity.
type SearchHit struct {
	Text   string
	Source string
	Score  float32
}
