package packages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
)

// SearchIndex is a secondary full-text index for package search.
type SearchIndex interface {
	Search(ctx context.Context, prefix string, limit int) ([]Package, error)
}

// OpenSearchIndex stores package documents in an OpenSearch index keyed by
// package name.
type OpenSearchIndex struct {
	client *opensearch.Client
	index  string
}

func NewOpenSearchIndex(client *opensearch.Client, index string) *OpenSearchIndex {
	return &OpenSearchIndex{client: client, index: index}
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"id":         {"type": "keyword"},
			"summary":    {"type": "text"},
			"license":    {"type": "keyword"},
			"updated_at": {"type": "date"}
		}
	}
}`

// EnsureIndex creates the index when it does not exist yet.
func (i *OpenSearchIndex) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.index}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return errors.Join(ErrIndexUnavailable, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = i.client.Indices.Create(i.index,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return errors.Join(ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: create index: %s", ErrIndexRequest, res.Status())
	}
	return nil
}

// Index upserts p.
func (i *OpenSearchIndex) Index(ctx context.Context, p Package) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := i.client.Index(i.index, bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(p.ID),
	)
	if err != nil {
		return errors.Join(ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: index %s: %s", ErrIndexRequest, p.ID, res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source Package `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a case-insensitive prefix query on the package name.
func (i *OpenSearchIndex) Search(ctx context.Context, prefix string, limit int) ([]Package, error) {
	query, err := json.Marshal(map[string]any{
		"size": limit,
		"sort": []any{map[string]any{"id": "asc"}},
		"query": map[string]any{
			"prefix": map[string]any{
				"id": map[string]any{"value": prefix, "case_insensitive": true},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(bytes.NewReader(query)),
	)
	if err != nil {
		return nil, errors.Join(ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: search: %s", ErrIndexRequest, res.Status())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Join(ErrIndexRequest, err)
	}
	var sr searchResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, errors.Join(ErrIndexRequest, err)
	}

	out := make([]Package, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

var _ SearchIndex = (*OpenSearchIndex)(nil)
