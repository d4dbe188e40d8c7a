package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"drive-transcribe-go/internal/logger"
)

const defaultEndpoint = "https://api.groq.com/openai/v1/audio/transcriptions"

// GroqClient sends staged audio to Groq's Whisper endpoint. Decoding is
// pinned to temperature 0 so repeated runs over the same audio produce
// stable transcript content.
type GroqClient struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

func NewGroqClient(apiKey string) *GroqClient {
	return &GroqClient{
		APIKey:     apiKey,
		Model:      "whisper-large-v3",
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the file at audioPath and returns the transcript
// text. Transport failures and 5xx responses are retried with backoff;
// 4xx responses fail immediately.
func (c *GroqClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	log := logger.New().WithField("component", "transcribe").WithField("file", filepath.Base(audioPath))

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	log.WithField("bytes", len(data)).Info("sending audio for transcription")

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 90 * time.Second

	var text string
	var lastErr error
	op := func() error {
		req, err := c.newRequest(ctx, filepath.Base(audioPath), data)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
			return lastErr
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		var parsed transcriptionResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		text = parsed.Text
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", lastErr
	}
	return text, nil
}

// newRequest builds a fresh multipart request; the body must be rebuilt
// for every retry attempt.
func (c *GroqClient) newRequest(ctx context.Context, filename string, audio []byte) (*http.Request, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}
	_ = w.WriteField("model", c.Model)
	_ = w.WriteField("response_format", "json")
	_ = w.WriteField("temperature", "0")
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	return req, nil
}
