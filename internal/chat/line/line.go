package line

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tablebooker/internal/config"
)

// Client sends reply messages through the LINE Messaging API.
type Client struct {
	token      string
	replyURL   string
	httpClient *http.Client
}

func New(cfg config.Line) *Client {
	return &Client{
		token:      cfg.ChannelToken,
		replyURL:   cfg.ReplyURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

func (c *Client) Reply(replyToken, text string) error {
	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.replyURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("reply rejected: status %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

// ValidateSignature checks the x-line-signature header against the raw
// webhook body: base64 of HMAC-SHA256 over the body with the channel secret.
func ValidateSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
