// Package imagehost 封装外部图片托管服务客户端
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lecture-deck-api/internal/config"
	"lecture-deck-api/pkg/metrics"
)

var tracer = otel.Tracer("imagehost")

// Client 图片托管服务客户端
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	maxSize    int64
}

// NewClient 创建客户端
func NewClient(cfg *config.ImageHostConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		maxSize:    maxSize,
	}
}

// MaxSize 允许上传的最大字节数
func (c *Client) MaxSize() int64 {
	return c.maxSize
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload 以 multipart 表单上传图片，返回公开访问地址
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader, size int64) (string, error) {
	ctx, span := tracer.Start(ctx, "imagehost.Upload",
		trace.WithAttributes(
			attribute.String("image.filename", filename),
			attribute.Int64("image.size", size),
		))
	defer span.End()

	if size > c.maxSize {
		metrics.ImageUploadTotal.WithLabelValues("rejected").Inc()
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", c.maxSize)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		metrics.ImageUploadTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.ImageUploadTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ImageUploadTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.URL == "" {
		metrics.ImageUploadTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("image host returned empty url")
	}

	metrics.ImageUploadTotal.WithLabelValues("ok").Inc()
	metrics.ImageUploadBytes.Observe(float64(size))
	return result.URL, nil
}
