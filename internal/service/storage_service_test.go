package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"vocab_edu_backend/internal/config"
)

func newLocalProvider(t *testing.T) (*LocalStorageProvider, string) {
	t.Helper()
	dir := t.TempDir()
	return &LocalStorageProvider{Config: &config.StorageConfig{Type: "local", LocalPath: dir}}, dir
}

func TestLocalUploadCreatesNestedKey(t *testing.T) {
	p, dir := newLocalProvider(t)

	url, err := p.Upload(context.Background(), "speaking/7/take1.webm", strings.NewReader("audio-bytes"), -1, "audio/webm")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/uploads/speaking/7/take1.webm" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "speaking", "7", "take1.webm"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestLocalUploadFileCopiesAndSkipsSelf(t *testing.T) {
	p, dir := newLocalProvider(t)

	src := filepath.Join(t.TempDir(), "rec.webm")
	if err := os.WriteFile(src, []byte("rec"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := p.UploadFile(context.Background(), "speaking/1/rec.webm", src, "audio/webm"); err != nil {
		t.Fatalf("upload file: %v", err)
	}
	dst := filepath.Join(dir, "speaking", "1", "rec.webm")
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("copied file missing: %v", err)
	}

	// 源即目标时直接返回，不能把文件清空
	if _, err := p.UploadFile(context.Background(), "speaking/1/rec.webm", dst, "audio/webm"); err != nil {
		t.Fatalf("self upload: %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "rec" {
		t.Errorf("content after self upload = %q", data)
	}
}

func TestLocalDeleteRemovesObject(t *testing.T) {
	p, dir := newLocalProvider(t)

	if _, err := p.Upload(context.Background(), "avatars/9/a.png", strings.NewReader("png"), -1, "image/png"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := p.Delete(context.Background(), "avatars/9/a.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatars", "9", "a.png")); !os.IsNotExist(err) {
		t.Errorf("object still present, stat err = %v", err)
	}
}
