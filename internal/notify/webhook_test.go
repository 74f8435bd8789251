package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookNotifier_PostsSummary(t *testing.T) {
	var got BatchSummary
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	summary := BatchSummary{BatchID: "b-1", Total: 3, Completed: 2, Failed: 1}
	if err := n.BatchSettled(summary); err != nil {
		t.Fatalf("BatchSettled: %v", err)
	}
	if got != summary {
		t.Errorf("received %+v, want %+v", got, summary)
	}
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	if err := n.BatchSettled(BatchSummary{}); err == nil {
		t.Error("expected error for 502 response")
	}
}
