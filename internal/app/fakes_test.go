package app

import (
	"context"

	"smartfaq/internal/ai"
	"smartfaq/internal/model"
)

type fakeEmbedder struct {
	embedCalls int
	batchCalls int
	err        error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

type fakeIndex struct {
	searchCalls  int
	replaceCalls int
	searchErr    error
	replaceErr   error
	hits         []model.SearchHit

	lastCollection string
	lastVectorSize int
	lastEntries    []model.IndexEntry
}

func (f *fakeIndex) Replace(_ context.Context, collection string, vectorSize int, entries []model.IndexEntry) error {
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.lastCollection = collection
	f.lastVectorSize = vectorSize
	f.lastEntries = entries
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ []float32, _ int) ([]model.SearchHit, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

type fakeGenerator struct {
	calls        int
	err          error
	answer       string
	lastMessages []ai.ChatMessage
}

func (f *fakeGenerator) Complete(_ context.Context, messages []ai.ChatMessage) (string, error) {
	f.calls++
	f.lastMessages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeCache struct {
	getCalls int
	getErr   error
	setErr   error
	store    map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	f.getCalls++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	answer, ok := f.store[key]
	return answer, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key, answer string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.store[key] = answer
	return nil
}

type fakePublisher struct {
	err     error
	records []model.QARecord
}

func (f *fakePublisher) Publish(_ context.Context, record model.QARecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}
