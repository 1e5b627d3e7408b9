package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/watchDOGGGG/relook-online-store/checkout"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
	"github.com/watchDOGGGG/relook-online-store/payments"
)

const testJWTSecret = "test-secret"

// Stub CheckoutService
type stubCheckoutService struct {
	lastUserID    string
	lastReference string

	initializeResult *checkout.InitializeResult
	initializeErr    error
	verifyResult     *checkout.VerifyResult
	verifyErr        error
}

func (s *stubCheckoutService) Initialize(ctx context.Context, userID string, params checkout.InitializeParams) (*checkout.InitializeResult, error) {
	s.lastUserID = userID
	if s.initializeErr != nil {
		return nil, s.initializeErr
	}
	return s.initializeResult, nil
}

func (s *stubCheckoutService) Verify(ctx context.Context, userID, reference string) (*checkout.VerifyResult, error) {
	s.lastUserID = userID
	s.lastReference = reference
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyResult, nil
}

func newPaymentTestRouter(service CheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	pc := NewPaymentController(service)
	group := engine.Group("/payments", middlewares.RequireAuth(testJWTSecret))
	group.POST("/initialize", pc.InitializePayment)
	group.POST("/verify", pc.VerifyPayment)
	return engine
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": "user",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, engine *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestInitializePayment_RequiresAuth(t *testing.T) {
	engine := newPaymentTestRouter(&stubCheckoutService{})

	recorder := doJSON(t, engine, "/payments/initialize", "", gin.H{
		"email": "ada@example.com", "amount": 950000, "orderId": "ORD-1",
	})

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", recorder.Code)
	}
	if body := decodeBody(t, recorder); body["success"] != false {
		t.Errorf("expected success=false, got %v", body)
	}
}

func TestInitializePayment_Success(t *testing.T) {
	service := &stubCheckoutService{
		initializeResult: &checkout.InitializeResult{
			AuthorizationURL: "https://pay.example/checkout/ORD-1",
			AccessCode:       "abc123",
			Reference:        "ORD-1",
		},
	}
	engine := newPaymentTestRouter(service)

	recorder := doJSON(t, engine, "/payments/initialize", signTestToken(t, "user-1"), gin.H{
		"email": "ada@example.com", "amount": 950000, "orderId": "ORD-1",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body)
	}
	if body["authorization_url"] != "https://pay.example/checkout/ORD-1" || body["reference"] != "ORD-1" {
		t.Errorf("unexpected response body: %v", body)
	}
	if service.lastUserID != "user-1" {
		t.Errorf("caller identity should come from the token, got %q", service.lastUserID)
	}
}

func TestInitializePayment_MissingFields(t *testing.T) {
	engine := newPaymentTestRouter(&stubCheckoutService{})

	recorder := doJSON(t, engine, "/payments/initialize", signTestToken(t, "user-1"), gin.H{
		"email": "ada@example.com",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}

func TestInitializePayment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", checkout.ErrOrderNotFound, http.StatusNotFound},
		{"foreign order", checkout.ErrNotOwner, http.StatusForbidden},
		{"already processed", checkout.ErrAlreadyProcessed, http.StatusBadRequest},
		{"gateway error", &payments.GatewayError{StatusCode: 503, Message: "service unavailable"}, http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newPaymentTestRouter(&stubCheckoutService{initializeErr: tc.err})

			recorder := doJSON(t, engine, "/payments/initialize", signTestToken(t, "user-1"), gin.H{
				"email": "ada@example.com", "amount": 950000, "orderId": "ORD-1",
			})

			if recorder.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, recorder.Code)
			}
			body := decodeBody(t, recorder)
			if body["success"] != false || body["error"] == "" {
				t.Errorf("expected error envelope, got %v", body)
			}
		})
	}
}

func TestVerifyPayment_Success(t *testing.T) {
	service := &stubCheckoutService{
		verifyResult: &checkout.VerifyResult{
			Paid:          true,
			Status:        "success",
			Amount:        950000,
			Reference:     "ORD-1",
			CustomerEmail: "ada@example.com",
			Applied:       true,
		},
	}
	engine := newPaymentTestRouter(service)

	recorder := doJSON(t, engine, "/payments/verify", signTestToken(t, "user-1"), gin.H{
		"reference": "ORD-1",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %v", body)
	}
	if data["status"] != "success" || data["reference"] != "ORD-1" || data["customer_email"] != "ada@example.com" {
		t.Errorf("unexpected data: %v", data)
	}
	if service.lastReference != "ORD-1" {
		t.Errorf("reference not passed through, got %q", service.lastReference)
	}
}

func TestVerifyPayment_NonSuccessIsHTTP200(t *testing.T) {
	service := &stubCheckoutService{
		verifyResult: &checkout.VerifyResult{
			Paid:      false,
			Status:    "abandoned",
			Amount:    950000,
			Reference: "ORD-1",
		},
	}
	engine := newPaymentTestRouter(service)

	recorder := doJSON(t, engine, "/payments/verify", signTestToken(t, "user-1"), gin.H{
		"reference": "ORD-1",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("a failed payment is a business result, expected 200, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body)
	}
	data := body["data"].(map[string]any)
	if data["status"] != "abandoned" {
		t.Errorf("unexpected data: %v", data)
	}
	if _, present := data["customer_email"]; present {
		t.Error("customer_email should be omitted when the gateway returned none")
	}
}

func TestVerifyPayment_MissingReference(t *testing.T) {
	engine := newPaymentTestRouter(&stubCheckoutService{})

	recorder := doJSON(t, engine, "/payments/verify", signTestToken(t, "user-1"), gin.H{})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}

func TestVerifyPayment_OwnershipRejected(t *testing.T) {
	engine := newPaymentTestRouter(&stubCheckoutService{verifyErr: checkout.ErrNotOwner})

	recorder := doJSON(t, engine, "/payments/verify", signTestToken(t, "intruder"), gin.H{
		"reference": "ORD-1",
	})

	if recorder.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["success"] != false {
		t.Errorf("expected error envelope, got %v", body)
	}
}
