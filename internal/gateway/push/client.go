package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/afercon/delivery-notifier/internal/service/dispatch"
)

// Push service error strings that mean a token is gone for good and must be
// dropped from the record set rather than retried.
var permanentTokenErrors = map[string]bool{
	"NotRegistered":       true,
	"InvalidRegistration": true,
	"MismatchSenderId":    true,
}

// HTTPError reports a non-2xx response from the push service.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("push service returned status %d", e.StatusCode)
}

// Client talks to the managed push service over its HTTP send endpoint.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

// NewClient creates a push Client.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    notification      `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send delivers one message to every token and maps the per-token results.
// A returned error means the service as a whole was unreachable; per-token
// rejections are reported in the Report instead.
func (c *Client) Send(ctx context.Context, msg dispatch.Message) (dispatch.Report, error) {
	body, err := json.Marshal(sendRequest{
		RegistrationIDs: msg.Tokens,
		Notification:    notification{Title: msg.Title, Body: msg.Body},
		Data:            msg.Data,
	})
	if err != nil {
		return dispatch.Report{}, fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return dispatch.Report{}, fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return dispatch.Report{}, fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dispatch.Report{}, &HTTPError{StatusCode: resp.StatusCode}
	}

	var decoded sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return dispatch.Report{}, fmt.Errorf("decode push response: %w", err)
	}
	if len(decoded.Results) != len(msg.Tokens) {
		return dispatch.Report{}, fmt.Errorf("push response has %d results for %d tokens",
			len(decoded.Results), len(msg.Tokens))
	}

	report := dispatch.Report{Results: make([]dispatch.TokenResult, 0, len(msg.Tokens))}
	for i, res := range decoded.Results {
		report.Results = append(report.Results, dispatch.TokenResult{
			Token:     msg.Tokens[i],
			OK:        res.Error == "",
			Permanent: permanentTokenErrors[res.Error],
			Reason:    res.Error,
		})
	}
	return report, nil
}
