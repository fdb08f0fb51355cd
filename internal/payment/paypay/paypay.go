package paypay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tablebooker/internal/booking"
	"tablebooker/internal/config"

	"github.com/google/uuid"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentNotFound    = errors.New("payment reference not found")
)

// StatusCompleted is PayPay's terminal success state for a QR payment.
const StatusCompleted = "COMPLETED"

// Client talks to the PayPay v2 API. Every request carries an HMAC-SHA256
// signature over "timestamp\nnonce\nbody\n" with a fresh uuid nonce.
type Client struct {
	apiKey      string
	apiSecret   string
	merchantID  string
	baseURL     string
	redirectURL string
	httpClient  *http.Client
}

func New(cfg config.PayPay) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		merchantID:  cfg.MerchantID,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		redirectURL: "https://example.com/complete",
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

type amount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type resultInfo struct {
	Code string `json:"code"`
}

type qrCodeRequest struct {
	MerchantPaymentID string `json:"merchantPaymentId"`
	Amount            amount `json:"amount"`
	CodeType          string `json:"codeType"`
	RedirectURL       string `json:"redirectUrl"`
}

type qrCodeResponse struct {
	ResultInfo resultInfo `json:"resultInfo"`
	Data       struct {
		URL    string `json:"url"`
		CodeID string `json:"codeId"`
	} `json:"data"`
}

type paymentDetailsResponse struct {
	ResultInfo resultInfo `json:"resultInfo"`
	Data       struct {
		Status            string `json:"status"`
		MerchantPaymentID string `json:"merchantPaymentId"`
		Amount            amount `json:"amount"`
	} `json:"data"`
}

// CreateQRCode creates an ORDER_QR payment for the booking and returns the
// URL the client opens to pay. The merchantPaymentId is the booking id, which
// is what binds the payment reference to the booking.
func (c *Client) CreateQRCode(merchantPaymentID string, amountYen int64) (string, error) {
	body, err := json.Marshal(qrCodeRequest{
		MerchantPaymentID: merchantPaymentID,
		Amount:            amount{Amount: amountYen, Currency: "JPY"},
		CodeType:          "ORDER_QR",
		RedirectURL:       c.redirectURL,
	})
	if err != nil {
		return "", fmt.Errorf("marshal qr request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v2/codes", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build qr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.signRequest(req, string(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	var qr qrCodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d code %s", ErrGatewayUnavailable, resp.StatusCode, qr.ResultInfo.Code)
	}

	if qr.Data.URL == "" {
		return "", fmt.Errorf("%w: response missing url", ErrGatewayUnavailable)
	}

	return qr.Data.URL, nil
}

func (c *Client) getPaymentDetails(merchantPaymentID string) (*paymentDetailsResponse, error) {
	url := c.baseURL + "/v2/codes/payments/" + merchantPaymentID

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build details request: %w", err)
	}
	c.signRequest(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	var details paymentDetailsResponse
	if err = json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound || strings.Contains(details.ResultInfo.Code, "NOT_FOUND") {
		return nil, ErrPaymentNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d code %s", ErrGatewayUnavailable, resp.StatusCode, details.ResultInfo.Code)
	}

	return &details, nil
}

// Verify reports whether the payment behind the reference succeeded, and whom
// it was issued for. The gateway's status is passed through uncoerced; only
// COMPLETED counts as success.
func (c *Client) Verify(reference string) (*booking.VerifiedPayment, error) {
	details, err := c.getPaymentDetails(reference)
	if err != nil {
		return nil, err
	}

	return &booking.VerifiedPayment{
		Status:         details.Data.Status,
		Succeeded:      details.Data.Status == StatusCompleted,
		BoundBookingID: details.Data.MerchantPaymentID,
		AmountYen:      details.Data.Amount.Amount,
	}, nil
}

func (c *Client) signRequest(req *http.Request, body string) {
	nonce := uuid.New().String()
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(timestamp + "\n" + nonce + "\n" + body + "\n"))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req.Header.Set("X-ASSUME-MERCHANT", c.merchantID)
	req.Header.Set("X-PAYPAY-API-KEY", c.apiKey)
	req.Header.Set("X-PAYPAY-NONCE", nonce)
	req.Header.Set("X-PAYPAY-TIMESTAMP", timestamp)
	req.Header.Set("X-PAYPAY-SIGNATURE", signature)
}
