// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refine polishes a complete draft with a single completion call.
package refine

import (
	"context"

	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/internal/stage"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Refiner sends the whole draft for polishing.
type Refiner struct {
	client   completion.Client
	language string
}

// NewRefiner returns a Refiner that asks for polishing in language.
func NewRefiner(client completion.Client, language string) *Refiner {
	return &Refiner{client: client, language: language}
}

// Refine returns the polished article. Errors from the client propagate
// unchanged apart from the stage prefix.
func (r *Refiner) Refine(ctx context.Context, d types.Draft) (string, error) {
	return stage.Refine.Generate(ctx, r.client, stage.RefineInputs{
		Draft:    d.Markdown(),
		Language: r.language,
	})
}
