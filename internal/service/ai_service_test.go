package service

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"vocab_edu_backend/internal/config"
)

func TestAssessPronunciationRetriesTransientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "upstream busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score": 92}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, MaxRetries: 3})
	score, err := svc.AssessPronunciation("apple", "http://files.example.com/a.mp3")
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if score != 92 {
		t.Errorf("score = %d, want 92", score)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestAssessPronunciationGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, MaxRetries: 2})
	if _, err := svc.AssessPronunciation("apple", "http://files.example.com/a.mp3"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestAssessPronunciationDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, MaxRetries: 3})
	if _, err := svc.AssessPronunciation("apple", "http://files.example.com/a.mp3"); err == nil {
		t.Fatal("expected error on 400")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestAssessPronunciationClampsScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score": 140}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, MaxRetries: 1})
	score, err := svc.AssessPronunciation("apple", "http://files.example.com/a.mp3")
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if score != 100 {
		t.Errorf("score = %d, want clamped to 100", score)
	}
}

func TestTranslateParsesChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  苹果\n"}}]}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test-model", MaxRetries: 1})
	out, err := svc.Translate("apple", "中文")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "苹果" {
		t.Errorf("translation = %q, want %q", out, "苹果")
	}
}
