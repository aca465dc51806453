package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"vocab_edu_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

const ttsCacheKeyPrefix = "tts:"

// 同一 (voice, text) 的音频可长期复用
const ttsCacheTTL = 30 * 24 * time.Hour

// TTSService 文本转语音：调用 TTS 服务生成发音音频，
// 上传到对象存储并用 Redis 缓存生成结果的 URL
type TTSService struct {
	config  config.TTSConfig
	storage *StorageService
	redis   *redis.Client
	client  *http.Client
}

func NewTTSService(cfg config.TTSConfig, storage *StorageService, rdb *redis.Client) *TTSService {
	return &TTSService{
		config:  cfg,
		storage: storage,
		redis:   rdb,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func ttsCacheKey(voice, text string) string {
	sum := sha256.Sum256([]byte(voice + "|" + text))
	return ttsCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Synthesize 获取文本的发音音频 URL，命中缓存则不再请求上游
func (s *TTSService) Synthesize(ctx context.Context, text, voice string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text is required")
	}
	if voice == "" {
		voice = s.config.Voice
	}

	key := ttsCacheKey(voice, text)
	if cached, err := s.redis.Get(ctx, key).Result(); err == nil && cached != "" {
		return cached, nil
	}

	audio, err := s.fetchAudio(ctx, text, voice)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(voice + "|" + text))
	filename := fmt.Sprintf("tts/%s.mp3", hex.EncodeToString(sum[:16]))
	url, err := s.storage.Upload(ctx, filename, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, key, url, ttsCacheTTL).Err(); err != nil {
		// 缓存写失败不影响本次结果
		return url, nil
	}
	return url, nil
}

func (s *TTSService) fetchAudio(ctx context.Context, text, voice string) ([]byte, error) {
	reqBody := map[string]string{
		"input": text,
		"voice": voice,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/audio/speech", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error (status %d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
