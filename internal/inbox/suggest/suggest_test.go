package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"delimited", "Q1 || Q2 || Q3", []string{"Q1", "Q2", "Q3"}},
		{"no spaces", "Q1||Q2||Q3", []string{"Q1", "Q2", "Q3"}},
		{"newlines", "Q1\nQ2\n\nQ3\n", []string{"Q1", "Q2", "Q3"}},
		{"single", "  just one question?  ", []string{"just one question?"}},
		{"empty fragments dropped", "|| Q1 |||| Q2 ||", []string{"Q1", "Q2"}},
		{"truncated", "a || b || c || d", []string{"a", "b", "c"}},
		{"delimiter wins over newlines", "Q1\nstill Q1 || Q2", []string{"Q1\nstill Q1", "Q2"}},
		{"blank", "   ", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Parse(tc.raw))
		})
	}
}

type stubGenerator struct {
	mu    sync.Mutex
	calls int
	raw   string
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.raw, g.err
}

type memCache struct {
	raw string
	ok  bool
	ttl time.Duration
}

func (c *memCache) Get(context.Context) (string, bool, error) { return c.raw, c.ok, nil }

func (c *memCache) Set(_ context.Context, raw string, ttl time.Duration) error {
	c.raw, c.ok, c.ttl = raw, true, ttl
	return nil
}

func TestServiceFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults without generator", func(t *testing.T) {
		s := &Service{}
		got, err := s.Fetch(ctx)
		require.NoError(t, err)
		require.Equal(t, DefaultQuestions, got.Questions)
		require.Equal(t, got.Questions, Parse(got.Raw))
	})

	t.Run("generated", func(t *testing.T) {
		gen := &stubGenerator{raw: "A? || B? || C?"}
		s := &Service{Generator: gen}
		got, err := s.Fetch(ctx)
		require.NoError(t, err)
		require.Equal(t, "A? || B? || C?", got.Raw)
		require.Equal(t, []string{"A?", "B?", "C?"}, got.Questions)
	})

	t.Run("failure wraps ErrService", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		s := &Service{Generator: &stubGenerator{err: boom}}
		_, err := s.Fetch(ctx)
		require.ErrorIs(t, err, ErrService)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cache shields the generator", func(t *testing.T) {
		gen := &stubGenerator{raw: "A? || B? || C?"}
		cache := &memCache{}
		s := &Service{Generator: gen, Cache: cache, CacheTTL: 30 * time.Second}

		for range 3 {
			got, err := s.Fetch(ctx)
			require.NoError(t, err)
			require.Len(t, got.Questions, 3)
		}
		require.Equal(t, 1, gen.calls)
		require.Equal(t, 30*time.Second, cache.ttl)
	})
}
