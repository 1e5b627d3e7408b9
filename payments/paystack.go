// Package payments wraps the Paystack transaction API.
//
// Convention: the transaction reference sent to Paystack is always the order
// id. Verification resolves the order through that reference, so a provider
// that generates its own references would need an explicit mapping table
// before it could be plugged in here.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GatewayError is any non-2xx or malformed response from Paystack. It carries
// the gateway's own message so callers can surface it. A timeout is also a
// GatewayError: an ambiguous gateway state must never be reported as a failed
// payment.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("paystack: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("paystack: %s", e.Message)
}

type Client struct {
	http      *resty.Client
	secretKey string
}

func NewClient(secretKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		secretKey: secretKey,
	}
}

type InitializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyData struct {
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize starts a hosted-payment transaction. Amount is in kobo and the
// reference must be the order id.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.secretKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/transaction/initialize")
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var data InitializeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "malformed initialize payload"}
	}
	return &data, nil
}

// Verify asks Paystack for the authoritative state of a transaction. Only a
// literal "success" status means the customer paid; anything else is a
// negative business result, not an error.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyData, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.secretKey).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var data VerifyData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "malformed verify payload"}
	}
	return &data, nil
}

func decodeEnvelope(resp *resty.Response) (*apiEnvelope, error) {
	var envelope apiEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: "invalid response from payment gateway"}
	}
	if resp.IsError() {
		msg := envelope.Message
		if msg == "" {
			msg = "payment gateway request failed"
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return &envelope, nil
}
