package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"faqbot/internal/models"
	"faqbot/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyInput      = errors.New("message is empty")
	ErrMessageTooLong  = errors.New("message is too long")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is still answering the previous message")
)

// Responder produces the bot's reply to one user message.
type Responder interface {
	Respond(ctx context.Context, text string) Response
}

type session struct {
	id uuid.UUID

	// inflight is held while a message is being answered; a second Send
	// fails fast instead of queueing.
	inflight sync.Mutex

	mu         sync.Mutex
	messages   []models.ChatMessage
	lastActive time.Time
}

func (s *session) append(m models.ChatMessage, now time.Time) {
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.lastActive = now
	s.mu.Unlock()
}

func (s *session) snapshot() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Reply is the outcome of Send.
type Reply struct {
	Message     models.ChatMessage
	Source      Source
	Category    string
	Suggestions []string
}

// ChatService keeps chat transcripts in memory. Nothing is persisted.
type ChatService struct {
	responder Responder
	welcome   string
	maxLen    int
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewChatService(responder Responder, welcome string, cfg *config.ChatConfig, logger *zap.Logger) *ChatService {
	s := &ChatService{
		responder: responder,
		welcome:   welcome,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*session),
		stop:      make(chan struct{}),
	}
	if cfg != nil {
		s.maxLen = cfg.MaxMessageLength
		s.ttl = cfg.SessionTTL
	}

	if s.ttl > 0 {
		s.wg.Add(1)
		go s.janitor(s.ttl / 2)
	}
	return s
}

// Close stops the eviction loop.
func (s *ChatService) Close() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	s.wg.Wait()
}

func (s *ChatService) janitor(every time.Duration) {
	defer s.wg.Done()
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				s.logger.Info("Evicted idle chat sessions", zap.Int("count", n))
			}
		}
	}
}

func (s *ChatService) evictIdle() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastActive.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *ChatService) welcomeMessages(now time.Time) []models.ChatMessage {
	if s.welcome == "" {
		return nil
	}
	return []models.ChatMessage{models.NewChatMessage(s.welcome, models.SenderBot, now)}
}

// CreateSession opens a session whose transcript starts with the welcome
// message.
func (s *ChatService) CreateSession() (uuid.UUID, []models.ChatMessage) {
	now := s.now()
	sess := &session{
		id:         uuid.New(),
		messages:   s.welcomeMessages(now),
		lastActive: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Debug("Chat session created", zap.String("session_id", sess.id.String()))
	return sess.id, sess.snapshot()
}

func (s *ChatService) get(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ValidateInput trims text and rejects what must never reach the matcher.
func (s *ChatService) ValidateInput(text string) (string, error) {
	text = cleanInput(text)
	if text == "" {
		return "", ErrEmptyInput
	}
	if s.maxLen > 0 && len([]rune(text)) > s.maxLen {
		return "", fmt.Errorf("%w: limit is %d characters", ErrMessageTooLong, s.maxLen)
	}
	return text, nil
}

// Send appends the user message and exactly one bot message to the session.
func (s *ChatService) Send(ctx context.Context, id uuid.UUID, text string) (*Reply, error) {
	text, err := s.ValidateInput(text)
	if err != nil {
		return nil, err
	}

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !sess.inflight.TryLock() {
		return nil, ErrSessionBusy
	}
	defer sess.inflight.Unlock()

	sess.append(models.NewChatMessage(text, models.SenderUser, s.now()), s.now())

	resp := s.responder.Respond(ctx, text)

	bot := models.NewChatMessage(resp.Text, models.SenderBot, s.now())
	sess.append(bot, s.now())

	s.logger.Info("Chat message answered",
		zap.String("session_id", id.String()),
		zap.String("source", string(resp.Source)),
		zap.String("category", resp.Category),
	)

	return &Reply{
		Message:     bot,
		Source:      resp.Source,
		Category:    resp.Category,
		Suggestions: resp.Suggestions,
	}, nil
}

func (s *ChatService) History(id uuid.UUID) ([]models.ChatMessage, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// Clear resets the transcript to the welcome message. It fails with
// ErrSessionBusy while a message is being answered, so a reply never lands
// in a transcript without its question.
func (s *ChatService) Clear(id uuid.UUID) ([]models.ChatMessage, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !sess.inflight.TryLock() {
		return nil, ErrSessionBusy
	}
	defer sess.inflight.Unlock()

	now := s.now()
	sess.mu.Lock()
	sess.messages = s.welcomeMessages(now)
	sess.lastActive = now
	sess.mu.Unlock()

	return sess.snapshot(), nil
}

func (s *ChatService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Export renders the transcript as plain text.
func (s *ChatService) Export(id uuid.UUID) (string, error) {
	messages, err := s.History(id)
	if err != nil {
		return "", err
	}
	return FormatTranscript(id, messages), nil
}

func FormatTranscript(id uuid.UUID, messages []models.ChatMessage) string {
	var b strings.Builder
	b.WriteString("Iron Lady chat transcript\n")
	b.WriteString("Session: " + id.String() + "\n")

	for _, m := range messages {
		who := "You"
		if m.Sender == models.SenderBot {
			who = "Iron Lady"
		}
		b.WriteString(fmt.Sprintf("\n[%s] %s:\n%s\n", m.Timestamp, who, m.Text))
	}
	return b.String()
}

// SessionCount reports the number of live sessions.
func (s *ChatService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
