package main

import (
	"context"
	"errors"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns a skill label into a fixed-length vector. It is a
// potentially slow, potentially failing remote call, so it runs once
// per distinct skill at mutation time and never during matching.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type openAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func newOpenAIEmbedder(apiKey string) *openAIEmbedder {
	return &openAIEmbedder{
		client: openai.NewClient(apiKey),
		model:  openai.SmallEmbedding3,
	}
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}

// refreshEmbeddings computes and stores vectors for any of the given
// skills the user does not have one for yet. Failures are logged and
// skipped: a stale embedding cache degrades matching for that one
// label, it must not block the skill mutation itself.
func refreshEmbeddings(ctx context.Context, store *PostgresStore, embedder Embedder, user *User, skills []string) {
	if embedder == nil {
		return
	}
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		label := strings.ToLower(strings.TrimSpace(skill))
		if label == "" || seen[label] || len(user.EmbeddingFor(label)) > 0 {
			continue
		}
		seen[label] = true

		vec, err := embedder.Embed(ctx, skill)
		if err != nil {
			log.Printf("Embedding fetch failed for %q (user %d): %v", skill, user.ID, err)
			continue
		}
		if err := store.UpsertEmbedding(ctx, user.ID, label, vec); err != nil {
			log.Printf("Saving embedding failed for %q (user %d): %v", skill, user.ID, err)
		}
	}
}
