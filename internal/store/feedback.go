package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Feedback is a stored user feedback submission.
type Feedback struct {
	ID             string    `json:"id"`
	Body           string    `json:"body"`
	AttachmentName string    `json:"attachmentName,omitempty"`
	AttachmentSize int64     `json:"attachmentSize,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	// NotifiedAt is set once the submission was forwarded to ntfy.
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

// InsertFeedback records a submission. CreatedAt is set when zero.
func (s *Store) InsertFeedback(ctx context.Context, fb *Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = s.now()
	}
	var name sql.NullString
	var size sql.NullInt64
	if fb.AttachmentName != "" {
		name = sql.NullString{String: fb.AttachmentName, Valid: true}
		size = sql.NullInt64{Int64: fb.AttachmentSize, Valid: true}
	}
	err := s.execWithRetry(ctx,
		"INSERT INTO feedback (id, body, attachment_name, attachment_size, created_at) VALUES (?, ?, ?, ?, ?)",
		fb.ID, fb.Body, name, size, fb.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// MarkFeedbackNotified records when a submission was forwarded.
func (s *Store) MarkFeedbackNotified(ctx context.Context, id string, at time.Time) error {
	if at.IsZero() {
		at = s.now()
	}
	res, err := s.db.ExecContext(ensureContext(ctx), "UPDATE feedback SET notified_at = ? WHERE id = ?", at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("mark feedback notified: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mark feedback %s notified: %w", id, ErrNotFound)
	}
	return nil
}

// ListFeedback returns submissions newest first, at most limit rows (0 = all).
func (s *Store) ListFeedback(ctx context.Context, limit int) ([]Feedback, error) {
	ctx = ensureContext(ctx)
	query := "SELECT id, body, attachment_name, attachment_size, created_at, notified_at FROM feedback ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var (
			fb       Feedback
			name     sql.NullString
			size     sql.NullInt64
			created  int64
			notified sql.NullInt64
		)
		if err := rows.Scan(&fb.ID, &fb.Body, &name, &size, &created, &notified); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		fb.AttachmentName = name.String
		fb.AttachmentSize = size.Int64
		fb.CreatedAt = time.UnixMilli(created)
		if notified.Valid {
			at := time.UnixMilli(notified.Int64)
			fb.NotifiedAt = &at
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
