// Package sqlstore implements store.Store on database/sql.
//
// Queries use $N placeholders, so the driver must speak the Postgres wire
// dialect (github.com/lib/pq or pgx's stdlib adapter):
//
//	import _ "github.com/lib/pq"
//
//	db, _ := sql.Open("postgres", databaseURL)
//	st := sqlstore.New(db)
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/store"
)

//go:embed schema.sql
var schema string

// Store implements store.Store using a *sql.DB.
type Store struct {
	db *sql.DB
}

// New creates a new database/sql-backed Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the demo UI tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate demo schema: %w", err)
	}
	return nil
}

// CreateSession creates a new chat session.
func (s *Store) CreateSession(ctx context.Context, title string) (*store.ChatSession, error) {
	sess := &store.ChatSession{
		ID:    uuid.New(),
		Title: title,
	}

	query := `
		INSERT INTO tribridrag_sessions (id, title, created_at, last_active_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, last_active_at
	`
	err := s.db.QueryRowContext(ctx, query, sess.ID, title).Scan(&sess.CreatedAt, &sess.LastActiveAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*store.ChatSession, error) {
	query := `
		SELECT s.id, s.title, s.created_at, s.last_active_at,
		       (SELECT COUNT(*) FROM tribridrag_messages m WHERE m.session_id = s.id)
		FROM tribridrag_sessions s
		WHERE s.id = $1
	`

	var sess store.ChatSession
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.Title,
		&sess.CreatedAt,
		&sess.LastActiveAt,
		&sess.MessageCount,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns sessions ordered by last activity, newest first.
func (s *Store) ListSessions(ctx context.Context, params store.SessionListParams) ([]*store.ChatSession, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tribridrag_sessions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `
		SELECT s.id, s.title, s.created_at, s.last_active_at,
		       (SELECT COUNT(*) FROM tribridrag_messages m WHERE m.session_id = s.id)
		FROM tribridrag_sessions s
		ORDER BY s.last_active_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*store.ChatSession
	for rows.Next() {
		var sess store.ChatSession
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.LastActiveAt, &sess.MessageCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, total, nil
}

// AddMessage appends a message and bumps the session's activity timestamp.
func (s *Store) AddMessage(ctx context.Context, msg *store.ChatMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	passagesJSON, err := store.EncodePassages(msg.Passages)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tribridrag_messages
			(id, session_id, role, content, passages, input_tokens, output_tokens, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		msg.ID, msg.SessionID, msg.Role, msg.Content, passagesJSON,
		msg.Usage.InputTokens, msg.Usage.OutputTokens, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tribridrag_sessions SET last_active_at = $2 WHERE id = $1`,
		msg.SessionID, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// ListMessages returns a session's messages oldest first.
func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]*store.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, passages, input_tokens, output_tokens, created_at
		FROM tribridrag_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*store.ChatMessage
	for rows.Next() {
		var msg store.ChatMessage
		var passagesJSON []byte
		if err := rows.Scan(
			&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &passagesJSON,
			&msg.Usage.InputTokens, &msg.Usage.OutputTokens, &msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if msg.Passages, err = store.DecodePassages(passagesJSON); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

// ListPosts returns blog posts newest first.
func (s *Store) ListPosts(ctx context.Context) ([]*store.BlogPost, error) {
	query := `
		SELECT slug, title, author, summary, body, published_at
		FROM tribridrag_posts
		ORDER BY published_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*store.BlogPost
	for rows.Next() {
		var p store.BlogPost
		if err := rows.Scan(&p.Slug, &p.Title, &p.Author, &p.Summary, &p.Body, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (*store.BlogPost, error) {
	query := `
		SELECT slug, title, author, summary, body, published_at
		FROM tribridrag_posts
		WHERE slug = $1
	`
	var p store.BlogPost
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&p.Slug, &p.Title, &p.Author, &p.Summary, &p.Body, &p.PublishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// ListEvalRuns returns eval runs newest first.
func (s *Store) ListEvalRuns(ctx context.Context, params store.EvalRunListParams) ([]*store.EvalRun, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tribridrag_eval_runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count eval runs: %w", err)
	}

	query := `
		SELECT id, name, dataset, case_count, faithfulness, answer_relevance, context_precision, created_at
		FROM tribridrag_eval_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query eval runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.EvalRun
	for rows.Next() {
		var run store.EvalRun
		if err := rows.Scan(
			&run.ID, &run.Name, &run.Dataset, &run.CaseCount,
			&run.Scores.Faithfulness, &run.Scores.AnswerRelevance, &run.Scores.ContextPrecision,
			&run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan eval run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate eval runs: %w", err)
	}
	return runs, total, nil
}

// GetEvalRun retrieves an eval run by ID.
func (s *Store) GetEvalRun(ctx context.Context, id uuid.UUID) (*store.EvalRun, error) {
	query := `
		SELECT id, name, dataset, case_count, faithfulness, answer_relevance, context_precision, created_at
		FROM tribridrag_eval_runs
		WHERE id = $1
	`
	var run store.EvalRun
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Name, &run.Dataset, &run.CaseCount,
		&run.Scores.Faithfulness, &run.Scores.AnswerRelevance, &run.Scores.ContextPrecision,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get eval run: %w", err)
	}
	return &run, nil
}

// ListEvalCases returns a run's cases in dataset order.
func (s *Store) ListEvalCases(ctx context.Context, runID uuid.UUID) ([]*store.EvalCase, error) {
	query := `
		SELECT id, run_id, question, expected, answer, faithfulness, answer_relevance, context_precision
		FROM tribridrag_eval_cases
		WHERE run_id = $1
		ORDER BY ord ASC
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query eval cases: %w", err)
	}
	defer rows.Close()

	var cases []*store.EvalCase
	for rows.Next() {
		var c store.EvalCase
		if err := rows.Scan(
			&c.ID, &c.RunID, &c.Question, &c.Expected, &c.Answer,
			&c.Scores.Faithfulness, &c.Scores.AnswerRelevance, &c.Scores.ContextPrecision,
		); err != nil {
			return nil, fmt.Errorf("failed to scan eval case: %w", err)
		}
		cases = append(cases, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate eval cases: %w", err)
	}
	return cases, nil
}
