package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	text := "The warranty lasts two years."
	chunks := chunkText(text, 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_EmptyText(t *testing.T) {
	assert.Nil(t, chunkText("", 100, 10))
}

func TestChunkText_ExactSizeSingleChunk(t *testing.T) {
	text := strings.Repeat("a", 50)
	chunks := chunkText(text, 50, 10)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_OverlapInvariant(t *testing.T) {
	text := "abcdefghijklmnopqrstuvwxyz"
	size, overlap := 10, 4
	chunks := chunkText(text, size, overlap)

	require.Greater(t, len(chunks), 1)
	step := size - overlap
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), size)
		if i == 0 {
			continue
		}
		prev := chunks[i-1]
		// each chunk starts step runes after the previous one, so the
		// previous chunk's tail past step is shared context
		shared := prev[step:]
		assert.True(t, strings.HasPrefix(chunk, shared),
			"chunk %d does not start with the previous chunk's overlap", i)
		if len(prev) == size {
			assert.Len(t, shared, overlap)
		}
	}

	// chunks reassemble the original text
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		rebuilt.WriteString(chunks[i][min(overlap, len(chunks[i])):])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkText_FinalChunkMayBeShorter(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := chunkText(text, 10, 2)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.Len(t, chunk, 10)
	}
	assert.LessOrEqual(t, len(chunks[len(chunks)-1]), 10)
}

func TestChunkText_OverlapAtLeastSizeFallsBack(t *testing.T) {
	text := strings.Repeat("y", 40)
	chunks := chunkText(text, 10, 10)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}
	assert.Equal(t, text[:10], chunks[0])
}

func TestChunkText_Deterministic(t *testing.T) {
	text := strings.Repeat("The warranty lasts two years. ", 40)
	first := chunkText(text, 100, 20)
	second := chunkText(text, 100, 20)

	assert.Equal(t, first, second)
}
