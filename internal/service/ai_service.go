package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/pkg/monitoring"
)

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// doWithRetry 对瞬态失败（网络错误/429/5xx）做指数退避重试
func (s *AIService) doWithRetry(kind string, newRequest func() (*http.Request, error)) ([]byte, error) {
	backoff := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		req, err := newRequest()
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			monitoring.AIRequestCounter.WithLabelValues(kind, "network_error").Inc()
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			monitoring.AIRequestCounter.WithLabelValues(kind, "network_error").Inc()
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("AI API transient error (status %d): %s", resp.StatusCode, string(body))
			monitoring.AIRequestCounter.WithLabelValues(kind, "retryable").Inc()
			continue
		}

		if resp.StatusCode != http.StatusOK {
			monitoring.AIRequestCounter.WithLabelValues(kind, "failed").Inc()
			return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
		}

		monitoring.AIRequestCounter.WithLabelValues(kind, "success").Inc()
		return body, nil
	}

	return nil, fmt.Errorf("AI API unavailable after %d attempts: %w", s.config.MaxRetries, lastErr)
}

func (s *AIService) chat(kind, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	body, err := s.doWithRetry(kind, func() (*http.Request, error) {
		req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
		return req, nil
	})
	if err != nil {
		return "", err
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// Translate 翻译单词/短语到目标语言
func (s *AIService) Translate(text, targetLang string) (string, error) {
	system := "你是一个词汇学习助手。只输出译文本身，不要任何解释或标点修饰。"
	prompt := fmt.Sprintf("把下面的内容翻译成 %s：\n\n%s", targetLang, text)
	return s.chat("translate", system, prompt)
}

// GenerateExample 为单词生成一条例句
func (s *AIService) GenerateExample(word, meaning string) (string, error) {
	system := "你是一个词汇学习助手。为给定的单词生成一条自然简短的英文例句，只输出例句本身。"
	prompt := fmt.Sprintf("单词: %s\n释义: %s", word, meaning)
	return s.chat("example", system, prompt)
}

type pronunciationAssessment struct {
	Score float64 `json:"score"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AssessPronunciation 发音评测，返回 0-100 得分
func (s *AIService) AssessPronunciation(expectedText, audioURL string) (int, error) {
	reqBody := map[string]string{
		"model":     s.config.Model,
		"reference": expectedText,
		"audio_url": audioURL,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return 0, err
	}

	body, err := s.doWithRetry("assess", func() (*http.Request, error) {
		req, err := http.NewRequest("POST", s.config.BaseURL+"/audio/assessments", bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
		return req, nil
	})
	if err != nil {
		return 0, err
	}

	var result pronunciationAssessment
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	if result.Error != nil {
		return 0, fmt.Errorf("assessment error: %s", result.Error.Message)
	}

	score := int(result.Score)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
