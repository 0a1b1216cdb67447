// Package generation provides clients to text generation services.
// All of them fail with ErrGenerationFailed, the underlying cause is
// logged and kept in the error chain for diagnostics only.
package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
)

// ErrGenerationFailed is returned when the generation service could not
// produce a response, whatever the reason is.
var ErrGenerationFailed = errors.New("generation failed")

// Generator generates text by the given prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Cached is a Generator that keeps responses for the same prompts.
type Cached struct {
	Generator
	cache cache.Cache[string, string]
}

// NewCached makes new Cached generator with LRU of the given size.
// Zero ttl means responses never expire.
func NewCached(g Generator, size int, ttl time.Duration) *Cached {
	c := cache.NewCache[string, string]().WithLRU().WithMaxKeys(size)
	if ttl > 0 {
		c = c.WithTTL(ttl)
	}
	return &Cached{Generator: g, cache: c}
}

// Generate returns cached response for the prompt or asks the underlying generator.
func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if resp, ok := c.cache.Get(key); ok {
		return resp, nil
	}

	resp, err := c.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.cache.Set(key, resp, 0)
	return resp, nil
}

// Stat returns cache stats.
func (c *Cached) Stat() cache.Stats { return c.cache.Stat() }

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
