package feedback_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bingeboard/internal/config"
	"bingeboard/internal/feedback"
	"bingeboard/internal/logging"
	"bingeboard/internal/notifications"
	"bingeboard/internal/testsupport"
)

func TestSubmitStoresTrimmedFeedback(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	svc := feedback.NewService(st, logging.NewNop())
	ctx := context.Background()

	fb, err := svc.Submit(ctx, feedback.Submission{Text: "  love the lists  ", AttachmentName: "shot.png", AttachmentSize: 2048})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.ID == "" || fb.Body != "love the lists" {
		t.Fatalf("unexpected record %+v", fb)
	}

	stored, err := st.ListFeedback(ctx, 0)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != fb.ID || stored[0].AttachmentSize != 2048 {
		t.Fatalf("unexpected stored feedback %+v", stored)
	}
}

func TestSubmitRejectsEmpty(t *testing.T) {
	svc := feedback.NewService(testsupport.MustOpenStore(t), logging.NewNop())
	_, err := svc.Submit(context.Background(), feedback.Submission{Text: " \n\t "})
	if !errors.Is(err, feedback.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if err.Error() != "Feedback text cannot be empty." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSubmitRejectsOversizedText(t *testing.T) {
	svc := feedback.NewService(testsupport.MustOpenStore(t), logging.NewNop())
	if _, err := svc.Submit(context.Background(), feedback.Submission{Text: strings.Repeat("x", 10001)}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSubmitForwardsToNotifier(t *testing.T) {
	bodies := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := feedback.NewService(testsupport.MustOpenStore(t), logging.NewNop(),
		feedback.WithNotifier(notifications.NewService(&cfg)))

	fb, err := svc.Submit(context.Background(), feedback.Submission{Text: "add anime lists"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got := <-bodies
	if !strings.Contains(got, "add anime lists") || !strings.Contains(got, fb.ID) {
		t.Fatalf("unexpected notification body %q", got)
	}
	if fb.NotifiedAt == nil {
		t.Fatal("expected NotifiedAt on the returned record")
	}
}

func TestSubmitSucceedsWhenNotifierFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	st := testsupport.MustOpenStore(t)
	svc := feedback.NewService(st, logging.NewNop(), feedback.WithNotifier(notifications.NewService(&cfg)))

	if _, err := svc.Submit(context.Background(), feedback.Submission{Text: "still saved"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	stored, err := st.ListFeedback(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListFeedback: %v", err)
	}
	if len(stored) != 1 || stored[0].NotifiedAt != nil {
		t.Fatalf("expected one unnotified feedback row, got %+v", stored)
	}
}
