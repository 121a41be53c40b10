package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"smartfaq/internal/ai"
	"smartfaq/internal/model"
)

const defaultTopK = 3

const declineAnswer = "I could not find any information in the documents. Try ingesting the knowledge base first."

const groundingSystemPrompt = "You are a support assistant. " +
	"Answer the user's question using ONLY the provided context. " +
	"If the context does not contain the answer, reply exactly: " +
	"\"I don't know the answer based on the provided documents.\" " +
	"Do not use outside knowledge and do not make up facts."

// Machine-readable degradation kinds carried alongside the answer text.
const (
	ErrKindNoResults        = "no_results"
	ErrKindGenerationFailed = "generation_failed"
)

// AskResult is always returned to the caller; retrieval and generation
// failures degrade into the answer text instead of failing the request.
type AskResult struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	Cached    bool     `json:"cached"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

type FAQConfig struct {
	Collection string
	TopK       int
}

// FAQService is the per-question pipeline: cache check, query embedding,
// vector search, context assembly, grounded generation, cache write-back.
// It holds no mutable state; concurrent calls share only the injected
// collaborators.
type FAQService struct {
	cache     AnswerCache
	embedder  Embedder
	index     VectorIndex
	generator Generator
	publisher QAPublisher
	cfg       FAQConfig
	logger    zerolog.Logger
}

func NewFAQService(
	cache AnswerCache,
	embedder Embedder,
	index VectorIndex,
	generator Generator,
	publisher QAPublisher,
	cfg FAQConfig,
	logger zerolog.Logger,
) *FAQService {
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	return &FAQService{
		cache:     cache,
		embedder:  embedder,
		index:     index,
		generator: generator,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Ask answers a question from the indexed documents. It never returns an
// error to the caller: failures degrade to a diagnostic answer with empty
// sources.
func (s *FAQService) Ask(ctx context.Context, question string) AskResult {
	question = strings.TrimSpace(question)
	key := normalizeQuestion(question)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		// treat an unreachable cache as a miss
		s.logger.Warn().Err(err).Msg("answer cache read failed")
	}
	if hit {
		return AskResult{Answer: cached, Sources: []string{"cache"}, Cached: true}
	}

	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return s.degrade(ctx, question, "embed question failed", err)
	}

	hits, err := s.index.Search(ctx, s.cfg.Collection, queryVector, s.cfg.TopK)
	if err != nil {
		return s.degrade(ctx, question, "vector search failed", err)
	}
	if len(hits) == 0 {
		s.recordHistory(ctx, question, declineAnswer)
		return AskResult{Answer: declineAnswer, Sources: []string{}, ErrorKind: ErrKindNoResults}
	}

	var contextBlock strings.Builder
	sources := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		contextBlock.WriteString(h.Text)
		contextBlock.WriteString("\n\n")
		if h.Source == "" {
			continue
		}
		if _, ok := seen[h.Source]; !ok {
			seen[h.Source] = struct{}{}
			sources = append(sources, h.Source)
		}
	}

	messages := []ai.ChatMessage{
		{Role: "system", Content: groundingSystemPrompt},
		{Role: "user", Content: "Context:\n" + contextBlock.String() + "\nQuestion: " + question},
	}
	answer, err := s.generator.Complete(ctx, messages)
	if err != nil {
		return s.degrade(ctx, question, "answer generation failed", err)
	}
	answer = strings.TrimSpace(answer)

	// best effort: a cache write failure may not surface as a pipeline error
	if err := s.cache.Set(ctx, key, answer); err != nil {
		s.logger.Warn().Err(err).Msg("answer cache write failed")
	}
	s.recordHistory(ctx, question, answer)

	return AskResult{Answer: answer, Sources: sources, Cached: false}
}

func (s *FAQService) degrade(ctx context.Context, question, stage string, err error) AskResult {
	s.logger.Error().Err(err).Msg(stage)
	answer := fmt.Sprintf("%s: %v", stage, err)
	s.recordHistory(ctx, question, answer)
	return AskResult{
		Answer:    answer,
		Sources:   []string{},
		ErrorKind: ErrKindGenerationFailed,
	}
}

// recordHistory appends to the audit log after every non-cached answer,
// including declines and degraded answers. Best effort: publish failures
// are logged and swallowed.
func (s *FAQService) recordHistory(ctx context.Context, question, answer string) {
	record := model.QARecord{
		Question:   question,
		Answer:     answer,
		TokensUsed: estimateTokens(answer),
	}
	if err := s.publisher.Publish(ctx, record); err != nil {
		s.logger.Warn().Err(err).Msg("qa record publish failed")
	}
}

// normalizeQuestion derives the cache key: case-insensitive, whitespace
// trimmed, deterministic.
func normalizeQuestion(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// estimateTokens approximates the token count as words x 1.3. Heuristic
// only, not a billing-grade count.
func estimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}
