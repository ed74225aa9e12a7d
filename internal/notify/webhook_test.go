package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"annwatch/internal/board"
)

func testPost() board.Post {
	return board.Post{
		TopicID:  5510100,
		MsgID:    64000100,
		Title:    "[ANN] Gritstone - fair launch, no premine",
		URL:      "https://bitcointalk.org/index.php?topic=5510100.0",
		Author:   "gritminer",
		IsMining: true,
		FoundAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifier_SendDeliversPayload(t *testing.T) {
	var got payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := New(server.URL)
	if err := n.Send(context.Background(), NewPostMessage(testPost())); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	for _, want := range []string{
		"[ANN] Gritstone - fair launch, no premine",
		"gritminer",
		"<https://bitcointalk.org/index.php?topic=5510100.0>",
		"⛏️",
	} {
		if !strings.Contains(got.Content, want) {
			t.Errorf("message missing %q:\n%s", want, got.Content)
		}
	}
}

func TestNotifier_SendNonMiningOmitsMarker(t *testing.T) {
	p := testPost()
	p.IsMining = false

	if msg := NewPostMessage(p).Render(); strings.Contains(msg, "⛏️") {
		t.Errorf("non-mining post should not carry the mining marker:\n%s", msg)
	}
}

func TestNotifier_SendFailsOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	n := New(server.URL)
	err := n.Send(context.Background(), NewPostMessage(testPost()))
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", statusErr.Code)
	}
}

func TestNotifier_SendFailsOnUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	n := New(server.URL)
	if err := n.Send(context.Background(), NewPostMessage(testPost())); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
