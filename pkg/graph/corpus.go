package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/bindery/pkg/core"
)

// LoadCorpus lists every document from a repository and hydrates shallow
// entries. Repository listings may be index-backed and carry no body, but
// reference extraction needs full content, so empty documents are re-read
// through Get. Documents that fail to hydrate are kept shallow.
func LoadCorpus(ctx context.Context, repo core.Repository, logger *slog.Logger) ([]core.Binding, error) {
	docs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus: %w", err)
	}

	for i := range docs {
		if docs[i].Content != "" {
			continue
		}
		full, err := repo.Get(ctx, docs[i].ID)
		if err != nil {
			if logger != nil {
				logger.Debug("hydration failed, keeping shallow document", "id", docs[i].ID, "error", err)
			}
			continue
		}
		docs[i] = full
	}

	return docs, nil
}

// BuildRepository is LoadCorpus followed by Build.
func BuildRepository(ctx context.Context, repo core.Repository, logger *slog.Logger) (*Graph, error) {
	docs, err := LoadCorpus(ctx, repo, logger)
	if err != nil {
		return nil, err
	}
	return Build(docs), nil
}
