// Package feedback records user feedback submissions.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bingeboard/internal/logging"
	"bingeboard/internal/notifications"
	"bingeboard/internal/store"
	"bingeboard/internal/validation"
)

// ErrEmpty is returned for blank submissions. Its text is shown to users.
var ErrEmpty = errors.New("Feedback text cannot be empty.")

// Submission is a feedback request.
type Submission struct {
	Text           string `json:"feedbackText" validate:"max=10000"`
	AttachmentName string `json:"attachmentName,omitempty" validate:"max=255"`
	AttachmentSize int64  `json:"attachmentSize,omitempty" validate:"gte=0"`
}

// Recorder persists feedback.
type Recorder interface {
	InsertFeedback(ctx context.Context, fb *store.Feedback) error
	MarkFeedbackNotified(ctx context.Context, id string, at time.Time) error
}

// Service validates and stores submissions.
type Service struct {
	recorder Recorder
	notifier notifications.Service
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier forwards every stored submission to notifier.
func WithNotifier(notifier notifications.Service) Option {
	return func(s *Service) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// NewService constructs a Service. Without WithNotifier submissions are only
// stored.
func NewService(recorder Recorder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		recorder: recorder,
		notifier: notifications.NewService(nil),
		logger:   logging.NewComponentLogger(logger, "feedback"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores sub and returns the stored record.
func (s *Service) Submit(ctx context.Context, sub Submission) (store.Feedback, error) {
	sub.Text = strings.TrimSpace(sub.Text)
	sub.AttachmentName = strings.TrimSpace(sub.AttachmentName)
	if sub.Text == "" {
		return store.Feedback{}, ErrEmpty
	}
	if err := validation.Struct(sub); err != nil {
		return store.Feedback{}, fmt.Errorf("invalid feedback: %w", err)
	}
	fb := store.Feedback{
		ID:             uuid.NewString(),
		Body:           sub.Text,
		AttachmentName: sub.AttachmentName,
	}
	if fb.AttachmentName != "" {
		fb.AttachmentSize = sub.AttachmentSize
	}
	if err := s.recorder.InsertFeedback(ctx, &fb); err != nil {
		logging.ErrorWithContext(s.logger, "feedback not saved", "feedback_store_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "submission lost"),
		)
		return store.Feedback{}, err
	}
	s.logger.Info("feedback received",
		logging.String("feedback_id", fb.ID),
		logging.Int("length", len(fb.Body)),
		logging.String("attachment", fb.AttachmentName),
	)
	// A stored submission is never lost to a delivery failure.
	if err := s.notifier.NotifyFeedback(ctx, notifications.Feedback{
		ID:             fb.ID,
		Body:           fb.Body,
		AttachmentName: fb.AttachmentName,
		AttachmentSize: fb.AttachmentSize,
	}); err != nil {
		logging.WarnWithContext(s.logger, "feedback notification failed", "feedback_notify_failed",
			logging.String("feedback_id", fb.ID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "feedback stored but not forwarded"),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
		return fb, nil
	}
	if notifications.Enabled(s.notifier) {
		now := time.Now()
		if err := s.recorder.MarkFeedbackNotified(ctx, fb.ID, now); err != nil {
			logging.WarnWithContext(s.logger, "feedback notification not recorded", "feedback_mark_failed",
				logging.String("feedback_id", fb.ID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "notified_at left empty"),
			)
		} else {
			fb.NotifiedAt = &now
		}
	}
	return fb, nil
}
