// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/internal/completion"
	"github.com/pdiddy/article-engine/pkg/types"
)

func TestRefine(t *testing.T) {
	var prompts []string
	client := completion.Func(func(_ context.Context, p string) (string, error) {
		prompts = append(prompts, p)
		return "## A\n\npolished\n\n", nil
	})

	d := types.Draft{Sections: []types.DraftSection{{Heading: "A", Body: "rough"}, {Heading: "B", Body: "rougher"}}}
	got, err := NewRefiner(client, "English").Refine(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "## A\n\npolished\n\n", got)

	require.Len(t, prompts, 1, "refinement is a single call")
	assert.Contains(t, prompts[0], d.Markdown())
}

func TestRefine_Error(t *testing.T) {
	boom := &completion.Error{Kind: completion.KindQuota, StatusCode: 429, Err: errors.New("quota")}
	client := completion.Func(func(context.Context, string) (string, error) { return "", boom })

	_, err := NewRefiner(client, "English").Refine(context.Background(), types.Draft{Sections: []types.DraftSection{{Heading: "A", Body: "x"}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
