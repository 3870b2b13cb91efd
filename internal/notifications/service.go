package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bingeboard/internal/config"
)

const (
	userAgent      = "BingeBoard/0.1.0"
	previewMaxRune = 280
)

// Feedback is the subset of a stored submission included in an alert.
type Feedback struct {
	ID             string
	Body           string
	AttachmentName string
	AttachmentSize int64
}

// Service defines the notification surface used by the feedback flow.
type Service interface {
	NotifyFeedback(ctx context.Context, fb Feedback) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether svc actually delivers messages.
func Enabled(svc Service) bool {
	_, noop := svc.(noopService)
	return svc != nil && !noop
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyFeedback(ctx context.Context, fb Feedback) error {
	var builder strings.Builder
	builder.WriteString(preview(fb.Body))
	if name := strings.TrimSpace(fb.AttachmentName); name != "" {
		fmt.Fprintf(&builder, "\n📎 %s (%d bytes)", name, fb.AttachmentSize)
	}
	if fb.ID != "" {
		fmt.Fprintf(&builder, "\nID: %s", fb.ID)
	}
	data := payload{
		title:   "BingeBoard - Feedback",
		message: builder.String(),
		tags:    []string{"bingeboard", "feedback"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "BingeBoard - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"bingeboard", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func preview(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= previewMaxRune {
		return body
	}
	return string(runes[:previewMaxRune]) + "…"
}

type noopService struct{}

func (noopService) NotifyFeedback(context.Context, Feedback) error { return nil }
func (noopService) TestNotification(context.Context) error          { return nil }
