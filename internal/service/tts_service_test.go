package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

func newTTSTestService(t *testing.T, baseURL string) (*TTSService, string) {
	t.Helper()

	dir := t.TempDir()
	storageCfg := &config.Config{}
	storageCfg.Storage.Type = "local"
	storageCfg.Storage.LocalPath = dir
	storage := NewStorageService(storageCfg)

	// 指向不可达的 Redis，缓存 miss/写失败都不应影响合成结果
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})

	return NewTTSService(config.TTSConfig{BaseURL: baseURL, Voice: "alloy"}, storage, rdb), dir
}

func TestSynthesizeUploadsAudio(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	svc, dir := newTTSTestService(t, srv.URL)

	url, err := svc.Synthesize(context.Background(), "apple", "")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if url == "" {
		t.Fatal("url should not be empty")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}

	// 音频应落到本地存储
	data, err := os.ReadFile(filepath.Join(dir, "tts", filepath.Base(url)))
	if err != nil {
		t.Fatalf("read uploaded file: %v", err)
	}
	if string(data) != "fake-mp3-bytes" {
		t.Errorf("uploaded content = %q", data)
	}
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	svc, _ := newTTSTestService(t, "http://127.0.0.1:1")
	if _, err := svc.Synthesize(context.Background(), "", "alloy"); err == nil {
		t.Error("empty text should be rejected")
	}
}

func TestTTSCacheKeyIsStablePerVoiceAndText(t *testing.T) {
	a := ttsCacheKey("alloy", "apple")
	b := ttsCacheKey("alloy", "apple")
	if a != b {
		t.Error("same input should produce the same key")
	}
	if ttsCacheKey("nova", "apple") == a {
		t.Error("different voice should produce a different key")
	}
	if ttsCacheKey("alloy", "apples") == a {
		t.Error("different text should produce a different key")
	}
}
