package lint

import (
	"context"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/graph"
)

// RunRepository lists the corpus from a repository, hydrates shallow
// documents, and runs the lint rules over the result.
func RunRepository(ctx context.Context, repo core.Repository, opts Options) (*Report, error) {
	docs, err := graph.LoadCorpus(ctx, repo, opts.Logger)
	if err != nil {
		return nil, err
	}
	return NewRunner(opts).Run(ctx, docs)
}
