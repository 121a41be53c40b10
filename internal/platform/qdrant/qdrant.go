package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartfaq/internal/model"
)

// Client is a REST client to Qdrant. Collections are always addressed through
// an alias so that a wholesale replace is an atomic alias repoint: Replace
// builds a fresh versioned collection, upserts every point, swaps the alias,
// then drops the previous physical collection. Queries resolving through the
// alias see either the old or the new collection, never a mix.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// overridable in tests; production uses time.Now
	now func() time.Time
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Ping verifies the Qdrant endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/collections", nil)
	return err
}

// Replace rebuilds the collection behind the given alias from scratch.
// Point IDs are positional; the whole collection is rewritten every time.
func (c *Client) Replace(ctx context.Context, alias string, vectorSize int, entries []model.IndexEntry) error {
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}

	name := fmt.Sprintf("%s-v%d", alias, c.now().UnixNano())
	createBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	if _, err := c.do(ctx, http.MethodPut, "/collections/"+name, createBody); err != nil {
		return fmt.Errorf("create collection %s failed: %w", name, err)
	}

	if len(entries) > 0 {
		points := make([]map[string]any, len(entries))
		for i, e := range entries {
			points[i] = map[string]any{
				"id":     i,
				"vector": e.Vector,
				"payload": map[string]any{
					"text":   e.Text,
					"source": e.Source,
				},
			}
		}
		upsertBody := map[string]any{"points": points}
		if _, err := c.do(ctx, http.MethodPut, "/collections/"+name+"/points?wait=true", upsertBody); err != nil {
			// leave the alias pointing at the previous collection
			c.dropCollection(ctx, name)
			return fmt.Errorf("upsert points into %s failed: %w", name, err)
		}
	}

	previous, err := c.aliasTarget(ctx, alias)
	if err != nil {
		c.dropCollection(ctx, name)
		return fmt.Errorf("resolve alias %s failed: %w", alias, err)
	}

	// delete + create in one actions request is atomic on the Qdrant side
	actions := []map[string]any{}
	if previous != "" {
		actions = append(actions, map[string]any{
			"delete_alias": map[string]any{"alias_name": alias},
		})
	}
	actions = append(actions, map[string]any{
		"create_alias": map[string]any{"collection_name": name, "alias_name": alias},
	})
	if _, err := c.do(ctx, http.MethodPost, "/collections/aliases", map[string]any{"actions": actions}); err != nil {
		c.dropCollection(ctx, name)
		return fmt.Errorf("swap alias %s failed: %w", alias, err)
	}

	if previous != "" && previous != name {
		if _, err := c.do(ctx, http.MethodDelete, "/collections/"+previous, nil); err != nil {
			return fmt.Errorf("drop old collection %s failed: %w", previous, err)
		}
	}
	return nil
}

// Search returns up to limit entries nearest to the query vector, ordered by
// descending cosine similarity. Searching through a dangling alias is not an
// error; it yields zero hits.
func (c *Client) Search(ctx context.Context, alias string, vector []float32, limit int) ([]model.SearchHit, error) {
	if limit <= 0 {
		limit = 3
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	raw, err := c.do(ctx, http.MethodPost, "/collections/"+alias+"/points/search", body)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("search %s failed: %w", alias, err)
	}

	var parsed struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response failed: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(parsed.Result))
	for _, r := range parsed.Result {
		hit := model.SearchHit{Score: r.Score}
		if v, ok := r.Payload["text"].(string); ok {
			hit.Text = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			hit.Source = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// dropCollection removes a half-built collection after a failed replace so
// failed ingests do not accumulate orphan versioned collections.
func (c *Client) dropCollection(ctx context.Context, name string) {
	_, _ = c.do(ctx, http.MethodDelete, "/collections/"+name, nil)
}

func (c *Client) aliasTarget(ctx context.Context, alias string) (string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/aliases", nil)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Result struct {
			Aliases []struct {
				AliasName      string `json:"alias_name"`
				CollectionName string `json:"collection_name"`
			} `json:"aliases"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse aliases response failed: %w", err)
	}
	for _, a := range parsed.Result.Aliases {
		if a.AliasName == alias {
			return a.CollectionName, nil
		}
	}
	return "", nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant status %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal qdrant request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build qdrant request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read qdrant response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, body: string(raw)}
	}
	return raw, nil
}
