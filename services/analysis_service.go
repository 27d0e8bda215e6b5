package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	engineTimeout      = 20 * time.Second
	maxEngineResponse  = 1 << 20
	engineErrorPreview = 256
)

type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

type AnalyzeInput struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

type analysisService struct {
	engineURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewAnalysisService forwards positions to an external engine. client may be nil.
func NewAnalysisService(engineURL string, client *http.Client, logger *slog.Logger) AnalysisService {
	if client == nil {
		client = &http.Client{Timeout: engineTimeout}
	}
	return &analysisService{engineURL: engineURL, client: client, logger: logger}
}

// Analyze returns the engine answer as is.
func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	fen := strings.TrimSpace(input.FEN)
	if fen == "" || input.Depth <= 0 {
		return nil, fmt.Errorf("%w: fen and depth are required", ErrValidationFailed)
	}

	body, err := json.Marshal(AnalyzeInput{FEN: fen, Depth: input.Depth})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.engineURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxEngineResponse))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrEngineUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := string(data)
		if len(preview) > engineErrorPreview {
			preview = preview[:engineErrorPreview]
		}
		s.logger.WarnContext(ctx, "engine returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", preview))
		return nil, fmt.Errorf("%w: engine responded with status %d", ErrEngineUnavailable, resp.StatusCode)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: engine response is not JSON", ErrEngineUnavailable)
	}

	return json.RawMessage(data), nil
}
