package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/database"
)

type fakeEmbedder struct {
	embedding []float32
	err       error
	gotText   string
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.gotText = text
	return f.embedding, f.err
}

type fakeVectorRepo struct {
	developers   []domain.DeveloperResult
	projects     []domain.ProjectResult
	gotEmbedding database.Vector
	gotLimit     int
}

func (f *fakeVectorRepo) SearchDevelopers(ctx context.Context, embedding database.Vector, limit int) ([]domain.DeveloperResult, error) {
	f.gotEmbedding = embedding
	f.gotLimit = limit
	return f.developers, nil
}

func (f *fakeVectorRepo) SearchProjects(ctx context.Context, embedding database.Vector, limit int) ([]domain.ProjectResult, error) {
	f.gotEmbedding = embedding
	f.gotLimit = limit
	return f.projects, nil
}

func TestSearchDevelopersPassesEmbeddingThrough(t *testing.T) {
	embedder := &fakeEmbedder{embedding: []float32{0.1, 0.2, 0.3}}
	vectors := &fakeVectorRepo{developers: []domain.DeveloperResult{{ID: "u1", Username: "ada"}}}
	svc := NewSemanticSearchService(embedder, vectors)

	results, err := svc.SearchDevelopers(context.Background(), "go backend", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Username != "ada" {
		t.Errorf("results = %+v, want single hit for ada", results)
	}
	if embedder.gotText != "go backend" {
		t.Errorf("embedded text = %q, want the raw query", embedder.gotText)
	}
	if len(vectors.gotEmbedding) != 3 || vectors.gotLimit != 5 {
		t.Errorf("repo got embedding len %d limit %d, want 3 and 5", len(vectors.gotEmbedding), vectors.gotLimit)
	}
}

func TestSearchDevelopersEmbedFailure(t *testing.T) {
	wantErr := errors.New("embedding api down")
	svc := NewSemanticSearchService(&fakeEmbedder{err: wantErr}, &fakeVectorRepo{})

	if _, err := svc.SearchDevelopers(context.Background(), "go backend", 5); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestSearchProjectsEmbedFailure(t *testing.T) {
	wantErr := errors.New("embedding api down")
	svc := NewSemanticSearchService(&fakeEmbedder{err: wantErr}, &fakeVectorRepo{})

	if _, err := svc.SearchProjects(context.Background(), "rust systems", 5); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
