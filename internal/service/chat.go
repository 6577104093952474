package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"documind/internal/clock"
	"documind/internal/logging"
	"documind/internal/model"
	"documind/internal/repository"
	"documind/internal/responder"
)

var (
	ErrSessionRequired = errors.New("session is required")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrChatClosed      = errors.New("chat service is closed")
)

// Chat scopes.
const (
	// ScopeDocument answers against the referenced record; no record yields the no-document answer.
	ScopeDocument = "document"
	// ScopeAssistant answers from the general dashboard assistant table.
	ScopeAssistant = "assistant"
)

// DefaultReplyDelay is the pause before the assistant turn is recorded.
const DefaultReplyDelay = 1500 * time.Millisecond

// ChatMessage is an incoming user message.
type ChatMessage struct {
	Text       string
	DocumentID string
	Scope      string
}

// ChatService records conversation turns and schedules the assistant reply.
type ChatService interface {
	// Send records the user turn and schedules the assistant turn after the reply delay.
	Send(ctx context.Context, sessionID string, msg ChatMessage) (*model.Turn, error)

	// History returns the turns of a session, oldest first.
	History(ctx context.Context, sessionID string) ([]model.Turn, error)

	// Reset clears a session and drops its pending replies.
	Reset(ctx context.Context, sessionID string) (int64, error)

	// Close stops every pending reply.
	Close()
}

// DocumentGetter resolves the record a message refers to.
type DocumentGetter interface {
	Get(ctx context.Context, id string) (*model.Document, error)
}

type pendingReply struct {
	session string
	timer   clock.Timer
}

type chatService struct {
	turns     repository.TurnRepository
	docs      DocumentGetter
	responder *responder.Responder
	clock     clock.Clock
	delay     time.Duration
	timeout   time.Duration
	log       *log.Logger

	mu      sync.Mutex
	pending map[uint64]pendingReply
	seq     uint64
	closed  bool
}

// ChatOption customizes the chat service.
type ChatOption func(*chatService)

func WithChatClock(c clock.Clock) ChatOption { return func(s *chatService) { s.clock = c } }

func WithReplyDelay(d time.Duration) ChatOption { return func(s *chatService) { s.delay = d } }

func WithChatLogger(l *log.Logger) ChatOption { return func(s *chatService) { s.log = l } }

// NewChatService constructs a ChatService.
func NewChatService(turns repository.TurnRepository, docs DocumentGetter, r *responder.Responder, opts ...ChatOption) ChatService {
	if r == nil {
		r = responder.New()
	}
	s := &chatService{
		turns:     turns,
		docs:      docs,
		responder: r,
		clock:     clock.Real(),
		delay:     DefaultReplyDelay,
		timeout:   5 * time.Second,
		log:       logging.Nop(),
		pending:   make(map[uint64]pendingReply),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *chatService) Send(ctx context.Context, sessionID string, msg ChatMessage) (*model.Turn, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrChatClosed
	}

	answer, err := s.answer(ctx, text, msg)
	if err != nil {
		return nil, err
	}

	turn := &model.Turn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Author:    model.AuthorUser,
		Text:      text,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}

	s.schedule(sessionID, answer)
	return turn, nil
}

// answer is computed up front so the reply reflects the record as it was when asked.
func (s *chatService) answer(ctx context.Context, text string, msg ChatMessage) (string, error) {
	if msg.Scope == ScopeAssistant {
		return s.responder.RespondGeneral(text), nil
	}
	if msg.DocumentID == "" {
		return s.responder.Respond(text, nil), nil
	}
	doc, err := s.docs.Get(ctx, msg.DocumentID)
	if err != nil {
		return "", err
	}
	return s.responder.Respond(text, doc), nil
}

func (s *chatService) schedule(sessionID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.seq++
	id := s.seq
	// The reply outlives the caller's request, so it keeps its own copy.
	sessionID = strings.Clone(sessionID)
	timer := s.clock.AfterFunc(s.delay, func() { s.reply(id, sessionID, answer) })
	s.pending[id] = pendingReply{session: sessionID, timer: timer}
}

func (s *chatService) reply(id uint64, sessionID, answer string) {
	s.mu.Lock()
	if _, ok := s.pending[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	turn := &model.Turn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Author:    model.AuthorAssistant,
		Text:      answer,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		s.log.Error().Str("component", "chat").Str("event", "reply_failed").
			Str("session_id", sessionID).Err(err).Msg("")
	}
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.turns.ListBySession(ctx, sessionID)
}

func (s *chatService) Reset(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, ErrSessionRequired
	}
	s.mu.Lock()
	for id, p := range s.pending {
		if p.session == sessionID {
			p.timer.Stop()
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	return s.turns.DeleteSession(ctx, sessionID)
}

func (s *chatService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}
