package app

import (
	"context"

	"smartfaq/internal/ai"
	"smartfaq/internal/model"
)

// Collaborator contracts consumed by the pipelines. The concrete clients are
// constructed once in bootstrap and injected here.

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type VectorIndex interface {
	Replace(ctx context.Context, collection string, vectorSize int, entries []model.IndexEntry) error
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]model.SearchHit, error)
}

type Generator interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

type AnswerCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, answer string) error
}

type QAPublisher interface {
	Publish(ctx context.Context, record model.QARecord) error
}
