package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"golang.org/x/oauth2"
)

// SheetsSink posts records to a spreadsheet web app. A delivery counts only
// when the app answers 2xx with {"status":"success"}.
type SheetsSink struct {
	url    string
	client *http.Client
}

type sheetsResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewSheetsSink creates the sink. When token is non-empty every request
// carries it as a bearer token.
func NewSheetsSink(url, token string) *SheetsSink {
	client := http.DefaultClient
	if token != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}
	return &SheetsSink{url: url, client: client}
}

func (s *SheetsSink) Name() string {
	return "sheets"
}

func (s *SheetsSink) Send(ctx context.Context, tx *entity.Transaction) error {
	body, err := json.Marshal(NewRecord(tx))
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheets responded %d", resp.StatusCode)
	}

	var result sheetsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if result.Status != "success" {
		return fmt.Errorf("sheets rejected record: status=%q %s", result.Status, result.Message)
	}
	return nil
}
