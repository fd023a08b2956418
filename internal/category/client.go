package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sohail/spendora/internal/money"
)

// Client calls the classifier service over HTTP. The classifier exposes a
// single POST /predict endpoint taking {description, amount} and returning
// {prediction}. The call is single-shot and cancelable through the request
// context; the client never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a classifier client. The timeout is a hard upper bound
// in addition to whatever deadline the caller's context carries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type predictResponse struct {
	Prediction string `json:"prediction"`
}

// Resolve asks the classifier for a category label.
func (c *Client) Resolve(ctx context.Context, description string, amount money.Money) (string, error) {
	body, err := json.Marshal(predictRequest{
		Description: description,
		Amount:      amount.Decimal().InexactFloat64(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if out.Prediction == "" {
		return "", fmt.Errorf("%w: empty prediction", ErrUnavailable)
	}
	return out.Prediction, nil
}
