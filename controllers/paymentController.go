package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/watchDOGGGG/relook-online-store/checkout"
	"github.com/watchDOGGGG/relook-online-store/middlewares"
	"github.com/watchDOGGGG/relook-online-store/payments"
)

// CheckoutService is what the payment endpoints need from the orchestrator.
type CheckoutService interface {
	Initialize(ctx context.Context, userID string, params checkout.InitializeParams) (*checkout.InitializeResult, error)
	Verify(ctx context.Context, userID, reference string) (*checkout.VerifyResult, error)
}

type PaymentController struct {
	service CheckoutService
}

func NewPaymentController(service CheckoutService) *PaymentController {
	return &PaymentController{service: service}
}

type initializePaymentRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Amount   int64          `json:"amount" binding:"required,min=1"`
	OrderID  string         `json:"orderId" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

// InitializePayment starts a Paystack transaction for the caller's pending
// order and returns the hosted payment page URL.
func (c *PaymentController) InitializePayment(ctx *gin.Context) {
	var body initializePaymentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendPaymentError(ctx, http.StatusBadRequest, "Missing required fields: email, amount, orderId")
		return
	}

	result, err := c.service.Initialize(ctx.Request.Context(), middlewares.AuthUserID(ctx), checkout.InitializeParams{
		OrderID:  body.OrderID,
		Email:    body.Email,
		Amount:   body.Amount,
		Metadata: body.Metadata,
	})
	if err != nil {
		c.respondCheckoutError(ctx, "initialize", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":           true,
		"authorization_url": result.AuthorizationURL,
		"access_code":       result.AccessCode,
		"reference":         result.Reference,
	})
}

type verifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// VerifyPayment confirms a transaction with Paystack. A non-success gateway
// status is a business result: HTTP 200 with success=false, the order stays
// pending.
func (c *PaymentController) VerifyPayment(ctx *gin.Context) {
	var body verifyPaymentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendPaymentError(ctx, http.StatusBadRequest, "Missing reference")
		return
	}

	result, err := c.service.Verify(ctx.Request.Context(), middlewares.AuthUserID(ctx), body.Reference)
	if err != nil {
		c.respondCheckoutError(ctx, "verify", err)
		return
	}

	data := gin.H{
		"status":    result.Status,
		"amount":    result.Amount,
		"reference": result.Reference,
	}
	if result.CustomerEmail != "" {
		data["customer_email"] = result.CustomerEmail
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": result.Paid,
		"data":    data,
	})
}

func (c *PaymentController) respondCheckoutError(ctx *gin.Context, op string, err error) {
	var gatewayErr *payments.GatewayError

	switch {
	case errors.Is(err, checkout.ErrOrderNotFound):
		sendPaymentError(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, checkout.ErrNotOwner):
		sendPaymentError(ctx, http.StatusForbidden, "Order does not belong to authenticated user")
	case errors.Is(err, checkout.ErrAlreadyProcessed):
		sendPaymentError(ctx, http.StatusBadRequest, "Order has already been processed")
	case errors.As(err, &gatewayErr):
		log.Printf("Paystack %s error: %v", op, gatewayErr)
		sendPaymentError(ctx, http.StatusBadGateway, gatewayErr.Message)
	default:
		log.Printf("Error during payment %s: %v", op, err)
		sendPaymentError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func sendPaymentError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "error": message})
}
