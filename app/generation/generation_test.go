package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestCached_Generate(t *testing.T) {
	calls := 0
	c := NewCached(generatorFunc(func(_ context.Context, prompt string) (string, error) {
		calls++
		if prompt == "broken" {
			return "", ErrGenerationFailed
		}
		return "answer to " + prompt, nil
	}), 10, 0)

	ctx := context.Background()

	resp, err := c.Generate(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "answer to go", resp)

	resp, err = c.Generate(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "answer to go", resp)
	assert.Equal(t, 1, calls)

	_, err = c.Generate(ctx, "broken")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	_, err = c.Generate(ctx, "broken")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 3, calls, "failures must not be cached")

	st := c.Stat()
	assert.Equal(t, 1, st.Hits)
	assert.Equal(t, 1, st.Added)
}
