package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/store"
)

// maxSessionTitle bounds the auto-generated session title.
const maxSessionTitle = 64

// ListSessions returns one page of chat sessions.
func (s *Service) ListSessions(ctx context.Context, limit, offset int) (*SessionList, error) {
	limit = ValidateLimit(limit)
	offset = ValidateOffset(offset)

	sessions, total, err := s.store.ListSessions(ctx, store.SessionListParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return &SessionList{
		Sessions:   sessions,
		TotalCount: total,
		HasMore:    offset+len(sessions) < total,
	}, nil
}

// GetConversation returns a session with its full transcript.
func (s *Service) GetConversation(ctx context.Context, sessionID uuid.UUID) (*Conversation, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	messages, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Conversation{Session: sess, Messages: messages}, nil
}

// SendMessage records the user's question, asks the backend, and records the
// answer with its passage provenance. A nil sessionID starts a new session
// titled after the question.
func (s *Service) SendMessage(ctx context.Context, sessionID uuid.UUID, question string) (*ChatResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	var sess *store.ChatSession
	var err error
	if sessionID == uuid.Nil {
		sess, err = s.store.CreateSession(ctx, sessionTitle(question))
	} else {
		sess, err = s.store.GetSession(ctx, sessionID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.AddMessage(ctx, &store.ChatMessage{
		SessionID: sess.ID,
		Role:      store.RoleUser,
		Content:   question,
	}); err != nil {
		return nil, err
	}

	answer, err := s.backend.Query(ctx, tribridrag.QueryRequest{
		Question:  question,
		SessionID: sess.ID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.AddMessage(ctx, &store.ChatMessage{
		SessionID: sess.ID,
		Role:      store.RoleAssistant,
		Content:   answer.Text,
		Passages:  answer.Passages,
		Usage:     answer.Usage,
	}); err != nil {
		return nil, err
	}

	return &ChatResult{SessionID: sess.ID.String(), Answer: answer}, nil
}

func sessionTitle(question string) string {
	title := strings.Join(strings.Fields(question), " ")
	runes := []rune(title)
	if len(runes) > maxSessionTitle {
		title = string(runes[:maxSessionTitle-3]) + "..."
	}
	return title
}
