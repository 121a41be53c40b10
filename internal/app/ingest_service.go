package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"smartfaq/internal/model"
	"smartfaq/internal/pkg/docloader"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
	embeddingBatchSize  = 10 // embedding APIs often limit batch size
)

type IngestStatus string

const (
	IngestStatusEmpty   IngestStatus = "empty"
	IngestStatusSuccess IngestStatus = "success"
	IngestStatusError   IngestStatus = "error"
)

// IngestOutcome is the structured result of one ingestion run. Failures are
// reported as a status, not an error, so callers can tell "nothing to do"
// from "something broke".
type IngestOutcome struct {
	Status     IngestStatus `json:"status"`
	ChunkCount int          `json:"chunks,omitempty"`
	Detail     string       `json:"detail,omitempty"`
}

type IngestConfig struct {
	Collection   string
	VectorSize   int
	ChunkSize    int
	ChunkOverlap int
}

// IngestService turns a folder of documents into an indexed collection:
// load, chunk, embed, wholesale collection replace.
type IngestService struct {
	embedder Embedder
	index    VectorIndex
	cfg      IngestConfig
	logger   zerolog.Logger
}

func NewIngestService(embedder Embedder, index VectorIndex, cfg IngestConfig, logger zerolog.Logger) *IngestService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = defaultChunkOverlap
	}
	return &IngestService{
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		logger:   logger,
	}
}

// Ingest replaces the configured collection with the contents of folder.
// A missing folder is created and reported as empty, not as an error.
func (s *IngestService) Ingest(ctx context.Context, folder string) IngestOutcome {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return errorOutcome(fmt.Errorf("create documents folder failed: %w", err))
		}
		return IngestOutcome{Status: IngestStatusEmpty, Detail: "folder created, please add documents"}
	}

	docs, err := docloader.LoadDir(folder)
	if err != nil {
		return errorOutcome(err)
	}
	if len(docs) == 0 {
		return IngestOutcome{Status: IngestStatusEmpty, Detail: "no documents found"}
	}

	var chunks []model.Chunk
	for _, doc := range docs {
		for i, text := range chunkText(doc.Text, s.cfg.ChunkSize, s.cfg.ChunkOverlap) {
			chunks = append(chunks, model.Chunk{Text: text, Source: doc.Source, Index: i})
		}
	}
	if len(chunks) == 0 {
		return IngestOutcome{Status: IngestStatusEmpty, Detail: "documents contain no text"}
	}

	entries := make([]model.IndexEntry, len(chunks))
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := make([]string, end-i)
		for j := i; j < end; j++ {
			batch[j-i] = chunks[j].Text
		}
		vectors, err := s.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return errorOutcome(fmt.Errorf("embed chunks failed: %w", err))
		}
		if len(vectors) != len(batch) {
			return errorOutcome(fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(batch), len(vectors)))
		}
		for j := i; j < end; j++ {
			entries[j] = model.IndexEntry{
				Vector: vectors[j-i],
				Text:   chunks[j].Text,
				Source: chunks[j].Source,
			}
		}
	}

	if err := s.index.Replace(ctx, s.cfg.Collection, s.cfg.VectorSize, entries); err != nil {
		return errorOutcome(fmt.Errorf("replace collection failed: %w", err))
	}

	s.logger.Info().
		Int("documents", len(docs)).
		Int("chunks", len(chunks)).
		Str("collection", s.cfg.Collection).
		Msg("ingestion complete")

	return IngestOutcome{Status: IngestStatusSuccess, ChunkCount: len(chunks)}
}

func errorOutcome(err error) IngestOutcome {
	return IngestOutcome{Status: IngestStatusError, Detail: err.Error()}
}
