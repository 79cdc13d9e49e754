package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"faqbot/internal/followup"
	"faqbot/internal/knowledge"
	"faqbot/internal/matcher"
	"faqbot/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Source tells where a response text came from.
type Source string

const (
	SourceFaq        Source = "faq"
	SourceCategory   Source = "category"
	SourceDefault    Source = "default"
	SourceCompletion Source = "completion"
	SourceApology    Source = "apology"
)

// Response is the bot's answer to one user message.
type Response struct {
	Text        string
	Source      Source
	Question    string
	Category    string
	Suggestions []string
}

// RandomSource picks the default response. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

const defaultCompletionTimeout = 10 * time.Second

// ResponseService turns a user message into exactly one response. It never
// fails: completion errors become ApologyText.
type ResponseService struct {
	matcher     *matcher.Matcher
	suggester   *followup.Suggester
	defaults    []string
	completer   Completer
	instruction string
	limiter     *rate.Limiter
	timeout     time.Duration
	logger      *zap.Logger

	mu  sync.Mutex // guards rnd
	rnd RandomSource
}

// NewResponseService wires the matcher over kb. A nil completer answers
// unmatched messages from the default pool; a nil rnd seeds one from the
// clock.
func NewResponseService(kb *knowledge.Base, completer Completer, cfg *config.CompletionConfig, rnd RandomSource, logger *zap.Logger) (*ResponseService, error) {
	m, err := matcher.New(kb)
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &ResponseService{
		matcher:   m,
		suggester: followup.New(),
		defaults:  kb.DefaultResponses(),
		completer: completer,
		limiter:   rate.NewLimiter(rate.Inf, 0),
		timeout:   defaultCompletionTimeout,
		logger:    logger,
		rnd:       rnd,
	}
	if completer != nil {
		s.instruction = BuildSystemInstruction(kb)
	}
	if cfg != nil {
		if cfg.Timeout > 0 {
			s.timeout = cfg.Timeout
		}
		if cfg.RatePerMinute > 0 {
			burst := cfg.Burst
			if burst <= 0 {
				burst = 1
			}
			s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), burst)
		}
	}
	return s, nil
}

// Respond answers text. Callers reject empty input before calling.
func (s *ResponseService) Respond(ctx context.Context, text string) Response {
	resp := s.resolve(ctx, text)
	resp.Suggestions = s.suggester.Suggest(text)
	return resp
}

func (s *ResponseService) resolve(ctx context.Context, text string) Response {
	result := s.matcher.Match(text)
	switch result.Kind {
	case matcher.KindFaq:
		s.logger.Debug("FAQ matched", zap.String("question", result.Question))
		return Response{Text: result.Answer, Source: SourceFaq, Question: result.Question}
	case matcher.KindCategory:
		s.logger.Debug("Category matched", zap.String("category", result.Category))
		return Response{Text: result.Answer, Source: SourceCategory, Category: result.Category}
	}

	if s.completer == nil {
		return Response{Text: s.pickDefault(), Source: SourceDefault}
	}
	if !s.limiter.Allow() {
		s.logger.Warn("Completion rate limit reached, using default response")
		return Response{Text: s.pickDefault(), Source: SourceDefault}
	}
	return s.complete(ctx, text)
}

func (s *ResponseService) complete(ctx context.Context, text string) Response {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.callCompleter(ctx, text)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			fields = append(fields, zap.String("reason", "timeout"))
		case errors.Is(err, ErrMalformedResponse):
			fields = append(fields, zap.String("reason", "malformed"))
		default:
			fields = append(fields, zap.String("reason", "network"))
		}
		s.logger.Warn("Completion failed, sending apology", fields...)
		return Response{Text: ApologyText, Source: SourceApology}
	}
	return Response{Text: answer, Source: SourceCompletion}
}

type completion struct {
	answer string
	err    error
}

// callCompleter returns when the completer does or when ctx expires,
// whichever comes first, so a provider that ignores ctx cannot stall a chat.
func (s *ResponseService) callCompleter(ctx context.Context, text string) (string, error) {
	done := make(chan completion, 1)
	go func() {
		answer, err := s.completer.Complete(ctx, text, s.instruction)
		done <- completion{answer: answer, err: err}
	}()

	select {
	case c := <-done:
		return c.answer, c.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *ResponseService) pickDefault() string {
	s.mu.Lock()
	i := s.rnd.Intn(len(s.defaults))
	s.mu.Unlock()
	return s.defaults[i]
}
