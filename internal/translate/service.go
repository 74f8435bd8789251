// Package translate calls OpenAI-compatible chat-completion providers
// to translate text, splitting long input into sentence-aware chunks
// and retrying timed-out requests.
package translate

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/houhuawei23/text-processing-tool/internal/config"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

const maxChunks = 10

var sentenceBoundaryRe = regexp.MustCompile(`([。！？.!?]+)`)

// Service translates text through configured providers. Settings may be
// swapped at runtime via UpdateConfig (config hot reload).
type Service struct {
	mu     sync.RWMutex
	cfg    config.TranslationConfig
	client *http.Client
}

// NewService creates a translation service from config
func NewService(cfg config.TranslationConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// UpdateConfig replaces the provider settings
func (s *Service) UpdateConfig(cfg config.TranslationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Service) snapshot() config.TranslationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Services lists provider names and whether each is usable
func (s *Service) Services() map[string]bool {
	cfg := s.snapshot()
	out := make(map[string]bool, len(cfg.Services))
	for name, svc := range cfg.Services {
		out[name] = svc.Enabled && svc.APIKey != ""
	}
	return out
}

// DefaultService returns the configured default provider name
func (s *Service) DefaultService() string {
	return s.snapshot().DefaultService
}

// Translate translates text using the named provider, chunking long
// input. The assembled translation and chunk count are returned in the
// result.
func (s *Service) Translate(ctx context.Context, text, prompt, serviceName string) (*domain.TranslationResult, error) {
	cfg := s.snapshot()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("input text cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("translation prompt cannot be empty")
	}
	if serviceName == "" {
		serviceName = cfg.DefaultService
	}

	svc, ok := cfg.Services[serviceName]
	if !ok {
		return nil, fmt.Errorf("unsupported translation service: %s", serviceName)
	}
	if !svc.Enabled || svc.APIKey == "" {
		return nil, fmt.Errorf("translation service %s is not available, check API key configuration", serviceName)
	}

	chunks := splitText(text, cfg.MaxChunkSize)
	if len(chunks) == 1 {
		out, err := s.translateChunk(ctx, svc, cfg, chunks[0], prompt, time.Duration(cfg.TimeoutShort)*time.Second)
		if err != nil {
			return nil, err
		}
		return &domain.TranslationResult{
			TranslatedText: out,
			ServiceUsed:    serviceName,
			PromptUsed:     prompt,
		}, nil
	}

	// Chunks are translated in order so the assembled text reads
	// contiguously; each chunk carries its position in the prompt.
	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		chunkPrompt := fmt.Sprintf("%s\n\n(Part %d/%d)", prompt, i+1, len(chunks))
		out, err := s.translateChunk(ctx, svc, cfg, chunk, chunkPrompt, time.Duration(cfg.TimeoutLong)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("translation failed on part %d: %w", i+1, err)
		}
		translated = append(translated, out)
	}

	return &domain.TranslationResult{
		TranslatedText:   strings.Join(translated, "\n\n"),
		ServiceUsed:      serviceName,
		PromptUsed:       prompt,
		ChunksTranslated: len(chunks),
	}, nil
}

// translateChunk performs one provider call with retry on timeout
func (s *Service) translateChunk(ctx context.Context, svc config.ServiceConfig, cfg config.TranslationConfig, text, prompt string, timeout time.Duration) (string, error) {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		out, err := s.callProvider(ctx, svc, text, prompt, timeout)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isTimeout(err) || attempt == retries-1 {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(cfg.RetryDelay) * time.Second):
		}
	}
	return "", lastErr
}

// splitText splits text on sentence boundaries into chunks no larger
// than maxSize, force-splitting by character count when sentence
// splitting produces too many pieces.
func splitText(text string, maxSize int) []string {
	if maxSize <= 0 || len(text) <= maxSize {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	parts := sentenceBoundaryRe.Split(text, -1)
	seps := sentenceBoundaryRe.FindAllString(text, -1)

	for i, part := range parts {
		sentence := part
		if i < len(seps) {
			sentence += seps[i]
		}
		if current.Len()+len(sentence) > maxSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		chunks = append(chunks, s)
	}

	if len(chunks) > maxChunks {
		chunks = chunks[:0]
		runes := []rune(text)
		// maxSize is in bytes for the sentence pass; the force split
		// works in runes to avoid cutting multi-byte characters.
		for i := 0; i < len(runes); i += maxSize {
			end := i + maxSize
			if end > len(runes) {
				end = len(runes)
			}
			if chunk := strings.TrimSpace(string(runes[i:end])); chunk != "" {
				chunks = append(chunks, chunk)
			}
		}
	}
	return chunks
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	for e := err; e != nil; {
		if t, ok := e.(timeouter); ok && t.Timeout() {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return false
}
