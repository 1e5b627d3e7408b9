// Package checkout coordinates payment initialization and verification for
// orders: it guards ownership and state before the gateway is ever called,
// applies the pending->paid transition at most once, and fans out receipts on
// a best-effort basis.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/watchDOGGGG/relook-online-store/models"
	"github.com/watchDOGGGG/relook-online-store/notifications"
	"github.com/watchDOGGGG/relook-online-store/payments"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOwner         = errors.New("order does not belong to authenticated user")
	ErrAlreadyProcessed = errors.New("order has already been processed")
)

// OrderStore is the slice of order persistence the orchestrator needs.
// Lookups return (nil, nil) when no order matches.
type OrderStore interface {
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	OrderByReference(ctx context.Context, reference string) (*models.Order, error)
	OrderWithItems(ctx context.Context, id string) (*models.Order, error)
	SetPaymentReference(ctx context.Context, orderID, reference string) error
	// MarkPaid flips the order behind reference from pending to paid and
	// reports whether this call applied the transition.
	MarkPaid(ctx context.Context, reference string) (bool, error)
}

type Gateway interface {
	Initialize(ctx context.Context, req payments.InitializeRequest) (*payments.InitializeData, error)
	Verify(ctx context.Context, reference string) (*payments.VerifyData, error)
}

type Orchestrator struct {
	store    OrderStore
	gateway  Gateway
	channels []notifications.Channel

	// callbackBaseURL is the storefront origin the gateway redirects back to.
	callbackBaseURL string

	// renotify re-sends notifications on successful verifies that did not
	// apply the transition (support-driven manual re-verification).
	renotify bool
}

func NewOrchestrator(store OrderStore, gateway Gateway, channels []notifications.Channel, callbackBaseURL string, renotify bool) *Orchestrator {
	return &Orchestrator{
		store:           store,
		gateway:         gateway,
		channels:        channels,
		callbackBaseURL: callbackBaseURL,
		renotify:        renotify,
	}
}

type InitializeParams struct {
	OrderID  string
	Email    string
	Amount   int64
	Metadata map[string]any
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Initialize starts a gateway transaction for a pending order owned by
// userID. The transaction reference is the order id. Every guard runs before
// the gateway is contacted, so unauthorized callers cost zero gateway calls.
func (o *Orchestrator) Initialize(ctx context.Context, userID string, params InitializeParams) (*InitializeResult, error) {
	order, err := o.store.OrderByID(ctx, params.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, ErrNotOwner
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrAlreadyProcessed
	}

	metadata := map[string]any{
		"order_id": order.ID,
		"user_id":  userID,
	}
	for k, v := range params.Metadata {
		metadata[k] = v
	}

	data, err := o.gateway.Initialize(ctx, payments.InitializeRequest{
		Email:       params.Email,
		Amount:      params.Amount,
		Reference:   order.ID,
		CallbackURL: o.callbackBaseURL + "/order-confirmation?reference=" + order.ID,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	// The gateway transaction already exists at this point. A failure to
	// record the reference is logged and accepted rather than rolled back;
	// a retry of initialize writes the same value again.
	if err := o.store.SetPaymentReference(ctx, order.ID, data.Reference); err != nil {
		log.Printf("order %s: payment reference %s not saved: %v", order.ID, data.Reference, err)
	}

	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

type VerifyResult struct {
	Paid          bool
	Status        string
	Amount        int64
	Reference     string
	CustomerEmail string
	// Applied reports whether this call performed the pending->paid
	// transition. A re-verify of an already-paid order returns Paid=true,
	// Applied=false.
	Applied bool
}

// Verify confirms a transaction with the gateway and, on success, marks the
// order paid exactly once and dispatches notifications. The order is resolved
// by reference, never by a client-supplied id.
func (o *Orchestrator) Verify(ctx context.Context, userID, reference string) (*VerifyResult, error) {
	order, err := o.store.OrderByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, ErrNotOwner
	}

	data, err := o.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Paid:          data.Status == "success",
		Status:        data.Status,
		Amount:        data.Amount,
		Reference:     data.Reference,
		CustomerEmail: data.Customer.Email,
	}
	if !result.Paid {
		return result, nil
	}

	applied, err := o.store.MarkPaid(ctx, reference)
	if err != nil {
		// The customer has paid; report the confirmation and let the status
		// be reconciled by a later verify.
		log.Printf("order %s: error updating status to paid: %v", order.ID, err)
		return result, nil
	}
	result.Applied = applied

	if applied || o.renotify {
		o.notify(ctx, order.ID)
	}

	return result, nil
}

// notify fans out to every channel, collecting failures without letting any
// of them affect the verification result.
func (o *Orchestrator) notify(ctx context.Context, orderID string) {
	order, err := o.store.OrderWithItems(ctx, orderID)
	if err != nil || order == nil {
		log.Printf("order %s: unable to load items for notifications: %v", orderID, err)
		return
	}

	receipt := notifications.ReceiptFromOrder(order)
	for _, channel := range o.channels {
		if err := channel.Send(ctx, receipt); err != nil {
			log.Printf("order %s: %s notification failed: %v", orderID, channel.Name(), err)
		}
	}
}
