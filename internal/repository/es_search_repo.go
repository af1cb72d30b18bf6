package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/devconnect/devconnect-backend/internal/domain"
)

const (
	IndexDevelopers = "developers"
	IndexProjects   = "projects"
)

type esSearchRepository struct {
	client          *elasticsearch.Client
	indexDevelopers string
	indexProjects   string
}

// NewESSearchRepository creates a new Elasticsearch-based keyword search repository.
func NewESSearchRepository(client *elasticsearch.Client, indexDevelopers, indexProjects string) SearchIndexRepository {
	return &esSearchRepository{
		client:          client,
		indexDevelopers: indexDevelopers,
		indexProjects:   indexProjects,
	}
}

func (r *esSearchRepository) IndexDeveloper(ctx context.Context, doc *domain.DeveloperDoc) error {
	return r.index(ctx, r.indexDevelopers, doc.ID, doc)
}

func (r *esSearchRepository) IndexProject(ctx context.Context, doc *domain.ProjectDoc) error {
	return r.index(ctx, r.indexProjects, doc.ID, doc)
}

func (r *esSearchRepository) DeleteProject(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      r.indexProjects,
		DocumentID: id,
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to delete project document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

func (r *esSearchRepository) index(ctx context.Context, index, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       strings.NewReader(string(data)),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

func (r *esSearchRepository) SearchDevelopers(ctx context.Context, query string, offset, limit int) ([]domain.DeveloperDoc, int, error) {
	body := map[string]interface{}{
		"from": offset,
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"username", "display_name", "bio", "skills"},
			},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.indexDevelopers),
		r.client.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search developers: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var result esResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	developers := make([]domain.DeveloperDoc, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var dev domain.DeveloperDoc
		if err := json.Unmarshal(hit.Source, &dev); err != nil {
			continue
		}
		developers = append(developers, dev)
	}

	return developers, result.Hits.Total.Value, nil
}

func (r *esSearchRepository) SearchProjects(ctx context.Context, query string, offset, limit int) ([]domain.ProjectDoc, int, error) {
	body := map[string]interface{}{
		"from": offset,
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "description", "tech_stack", "owner_username"},
			},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.indexProjects),
		r.client.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search projects: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var result esResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	projects := make([]domain.ProjectDoc, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var proj domain.ProjectDoc
		if err := json.Unmarshal(hit.Source, &proj); err != nil {
			continue
		}
		projects = append(projects, proj)
	}

	return projects, result.Hits.Total.Value, nil
}

// esResponse is the generic Elasticsearch search response structure.
type esResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
