// Package suggest asks a text-generation service for conversation starters
// and splits its answer into individual questions.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

const (
	// Delimiter separates questions in the generated text.
	Delimiter = "||"

	// MaxQuestions caps how many questions Parse returns.
	MaxQuestions = 3

	SystemInstruction = "You are an AI assistant generating fresh and random, engaging social conversation starters."

	Prompt = `Generate exactly three unique and engaging questions for an anonymous social messaging platform.
Each question must be separated by '||' with no extra line breaks or spaces.
Ensure that every response is different from previous ones and is creative.
Strictly follow this format:
Question 1 || Question 2 || Question 3

Examples:
1. "If you could master any skill instantly, what would it be? || What's the best advice you've ever received? || What's your dream travel destination?"
2. "What's a fun fact about you that most people don't know? || If you could have a superpower for a day, what would it be? || What's your go-to comfort food?"

Generate fresh, diverse, and engaging questions every time. Do NOT repeat past examples.`
)

// ErrService wraps every failure of the generation service.
var ErrService = errors.New("suggestion service failure")

// DefaultQuestions are served when no generator is configured.
var DefaultQuestions = []string{
	"What's your favorite movie?",
	"Do you have any pets?",
	"What's your dream job?",
}

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Suggestions is one generated batch. Raw is the unparsed text.
type Suggestions struct {
	Raw       string
	Questions []string
}

// Service fetches suggestions, optionally through a short-lived cache.
type Service struct {
	Generator Generator
	Cache     Cache
	CacheTTL  time.Duration
}

// Fetch returns up to MaxQuestions questions. Callers must cope with fewer.
func (s *Service) Fetch(ctx context.Context) (Suggestions, error) {
	log := slogx.FromContext(ctx)

	if s.Generator == nil {
		qs := make([]string, len(DefaultQuestions))
		copy(qs, DefaultQuestions)
		return Suggestions{Raw: strings.Join(qs, Delimiter), Questions: qs}, nil
	}

	if s.Cache != nil {
		raw, ok, err := s.Cache.Get(ctx)
		if err != nil {
			log.Warn("suggestion cache read failed", slog.Any("error", err))
		} else if ok {
			return Suggestions{Raw: raw, Questions: Parse(raw)}, nil
		}
	}

	raw, err := s.Generator.Generate(ctx, SystemInstruction, Prompt)
	if err != nil {
		log.Error("suggestion request failed", slog.Any("error", err))
		return Suggestions{}, fmt.Errorf("%w: %w", ErrService, err)
	}

	if s.Cache != nil && s.CacheTTL > 0 {
		if err := s.Cache.Set(ctx, raw, s.CacheTTL); err != nil {
			log.Warn("suggestion cache write failed", slog.Any("error", err))
		}
	}
	return Suggestions{Raw: raw, Questions: Parse(raw)}, nil
}

// Parse splits raw on Delimiter, or on newlines when the delimiter is
// absent. Fragments are trimmed and empty ones dropped. Text with neither
// separator comes back as a single question.
func Parse(raw string) []string {
	if !strings.Contains(raw, Delimiter) {
		raw = strings.ReplaceAll(raw, "\n", Delimiter)
	}

	out := make([]string, 0, MaxQuestions)
	for _, part := range strings.Split(raw, Delimiter) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == MaxQuestions {
			break
		}
	}
	return out
}
