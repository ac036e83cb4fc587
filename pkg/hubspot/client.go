// Package hubspot provides a lightweight HubSpot CRM client for the form
// pipeline. Uses raw HTTP calls (no SDK) to minimize external dependencies.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL は HubSpot API のエンドポイント
const DefaultBaseURL = "https://api.hubapi.com"

// Property はコンタクトの1プロパティ（name/value ペア）
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Client は HubSpot API クライアントのインターフェース
type Client interface {
	// UpsertContact はフォーム送信内容からコンタクトを作成・更新する
	UpsertContact(ctx context.Context, props []Property) error
}

// ErrNotConfigured は API キーが設定されていない場合のエラー
var ErrNotConfigured = errors.New("hubspot: not configured")

// StatusError is returned when HubSpot responds with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hubspot: status %d: %s", e.Code, e.Body)
}

// RealClient は HubSpot API への raw HTTP クライアント実装
type RealClient struct {
	APIKey     string
	BaseURL    string // テストで差し替え可能。空なら DefaultBaseURL
	httpClient *http.Client
}

// NewClient は RealClient を生成する
func NewClient(apiKey string) *RealClient {
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpsertContact はコンタクト作成 API に1回だけ POST する（リトライなし）
func (c *RealClient) UpsertContact(ctx context.Context, props []Property) error {
	if c.APIKey == "" {
		return ErrNotConfigured
	}

	body := map[string]any{"properties": props}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		base+"/crm/v3/objects/contacts",
		bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Code: resp.StatusCode, Body: string(detail)}
	}
	return nil
}
