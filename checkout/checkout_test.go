package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/watchDOGGGG/relook-online-store/models"
	"github.com/watchDOGGGG/relook-online-store/notifications"
	"github.com/watchDOGGGG/relook-online-store/payments"
)

// Mock OrderStore
type mockOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order

	setReferenceErr error
	markPaidErr     error
	markPaidCalls   int
}

func newMockOrderStore(orders ...*models.Order) *mockOrderStore {
	store := &mockOrderStore{orders: make(map[string]*models.Order)}
	for _, order := range orders {
		store.orders[order.ID] = order
	}
	return store
}

func (m *mockOrderStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderStore) OrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.orders {
		if order.PaymentReference != nil && *order.PaymentReference == reference {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockOrderStore) OrderWithItems(ctx context.Context, id string) (*models.Order, error) {
	return m.OrderByID(ctx, id)
}

func (m *mockOrderStore) SetPaymentReference(ctx context.Context, orderID, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setReferenceErr != nil {
		return m.setReferenceErr
	}
	if order, ok := m.orders[orderID]; ok {
		order.PaymentReference = &reference
	}
	return nil
}

func (m *mockOrderStore) MarkPaid(ctx context.Context, reference string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markPaidCalls++
	if m.markPaidErr != nil {
		return false, m.markPaidErr
	}
	for _, order := range m.orders {
		if order.PaymentReference != nil && *order.PaymentReference == reference &&
			order.Status == models.OrderStatusPending {
			order.Status = models.OrderStatusPaid
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOrderStore) status(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id].Status
}

// Mock Gateway
type mockGateway struct {
	mu              sync.Mutex
	initializeCalls int
	verifyCalls     int
	lastInitialize  payments.InitializeRequest

	initializeErr error
	verifyErr     error
	verifyStatus  string
	verifyAmount  int64
	customerEmail string
}

func (g *mockGateway) Initialize(ctx context.Context, req payments.InitializeRequest) (*payments.InitializeData, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initializeCalls++
	g.lastInitialize = req
	if g.initializeErr != nil {
		return nil, g.initializeErr
	}
	return &payments.InitializeData{
		AuthorizationURL: "https://pay.example/checkout/" + req.Reference,
		AccessCode:       "access-" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *mockGateway) Verify(ctx context.Context, reference string) (*payments.VerifyData, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	data := &payments.VerifyData{
		Status:    g.verifyStatus,
		Amount:    g.verifyAmount,
		Reference: reference,
	}
	data.Customer.Email = g.customerEmail
	return data, nil
}

// Mock Channel
type mockChannel struct {
	mu       sync.Mutex
	name     string
	sends    int
	last     notifications.Receipt
	sendErr  error
}

func (c *mockChannel) Name() string { return c.name }

func (c *mockChannel) Send(ctx context.Context, receipt notifications.Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends++
	c.last = receipt
	return c.sendErr
}

func (c *mockChannel) sendCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sends
}

func pendingOrder(id, userID string) *models.Order {
	return &models.Order{
		ID:                id,
		UserID:            &userID,
		Status:            models.OrderStatusPending,
		TotalAmount:       950000,
		ShippingFirstName: "Ada",
		ShippingLastName:  "Obi",
		ShippingEmail:     "ada@example.com",
		ShippingPhone:     "08147134884",
		OrderItems: []models.OrderItem{
			{ProductName: "Air Max 90", ProductPrice: 475000, Size: 42, Quantity: 2},
		},
	}
}

func TestInitialize_Success(t *testing.T) {
	store := newMockOrderStore(pendingOrder("ORD-1", "user-1"))
	gateway := &mockGateway{}
	orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

	result, err := orc.Initialize(context.Background(), "user-1", InitializeParams{
		OrderID: "ORD-1",
		Email:   "ada@example.com",
		Amount:  950000,
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.Reference != "ORD-1" {
		t.Errorf("expected reference ORD-1, got %s", result.Reference)
	}
	if result.AuthorizationURL == "" {
		t.Error("expected non-empty authorization URL")
	}
	if gateway.lastInitialize.Reference != "ORD-1" {
		t.Errorf("gateway reference should be the order id, got %s", gateway.lastInitialize.Reference)
	}
	if gateway.lastInitialize.CallbackURL != "https://shop.example/order-confirmation?reference=ORD-1" {
		t.Errorf("unexpected callback URL: %s", gateway.lastInitialize.CallbackURL)
	}
	if gateway.lastInitialize.Metadata["order_id"] != "ORD-1" || gateway.lastInitialize.Metadata["user_id"] != "user-1" {
		t.Errorf("metadata missing order/user ids: %v", gateway.lastInitialize.Metadata)
	}

	stored, _ := store.OrderByID(context.Background(), "ORD-1")
	if stored.PaymentReference == nil || *stored.PaymentReference != "ORD-1" {
		t.Error("payment reference was not persisted on the order")
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	store := newMockOrderStore(pendingOrder("ORD-1", "user-1"))
	gateway := &mockGateway{}
	orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

	params := InitializeParams{OrderID: "ORD-1", Email: "ada@example.com", Amount: 950000}

	first, err := orc.Initialize(context.Background(), "user-1", params)
	if err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	second, err := orc.Initialize(context.Background(), "user-1", params)
	if err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	if first.Reference != second.Reference {
		t.Errorf("retried initialize returned a different reference: %s vs %s", first.Reference, second.Reference)
	}
	stored, _ := store.OrderByID(context.Background(), "ORD-1")
	if *stored.PaymentReference != "ORD-1" || stored.Status != models.OrderStatusPending {
		t.Error("order state changed across idempotent retries")
	}
}

func TestInitialize_GuardsBeforeGateway(t *testing.T) {
	paid := pendingOrder("ORD-2", "user-1")
	paid.Status = models.OrderStatusPaid

	tests := []struct {
		name    string
		caller  string
		orderID string
		wantErr error
	}{
		{"order not found", "user-1", "missing", ErrOrderNotFound},
		{"foreign order", "intruder", "ORD-1", ErrNotOwner},
		{"already processed", "user-1", "ORD-2", ErrAlreadyProcessed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMockOrderStore(pendingOrder("ORD-1", "user-1"), paid)
			gateway := &mockGateway{}
			orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

			_, err := orc.Initialize(context.Background(), tc.caller, InitializeParams{
				OrderID: tc.orderID,
				Email:   "ada@example.com",
				Amount:  950000,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if gateway.initializeCalls != 0 {
				t.Errorf("gateway must not be called, got %d calls", gateway.initializeCalls)
			}
		})
	}
}

func TestInitialize_ReferencePersistFailureDoesNotFail(t *testing.T) {
	store := newMockOrderStore(pendingOrder("ORD-1", "user-1"))
	store.setReferenceErr = errors.New("db down")
	gateway := &mockGateway{}
	orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

	// The gateway transaction exists once initialize succeeded; a reference
	// persistence failure is logged, not surfaced.
	result, err := orc.Initialize(context.Background(), "user-1", InitializeParams{
		OrderID: "ORD-1",
		Email:   "ada@example.com",
		Amount:  950000,
	})
	if err != nil {
		t.Fatalf("expected success despite persistence failure, got %v", err)
	}
	if result.Reference != "ORD-1" {
		t.Errorf("expected reference ORD-1, got %s", result.Reference)
	}
}

func referenced(order *models.Order) *models.Order {
	ref := order.ID
	order.PaymentReference = &ref
	return order
}

func TestVerify_Success_TransitionsAndNotifiesOnce(t *testing.T) {
	store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
	gateway := &mockGateway{verifyStatus: "success", verifyAmount: 950000, customerEmail: "ada@example.com"}
	email := &mockChannel{name: "email"}
	whatsapp := &mockChannel{name: "whatsapp"}
	orc := NewOrchestrator(store, gateway, []notifications.Channel{email, whatsapp}, "https://shop.example", false)

	result, err := orc.Verify(context.Background(), "user-1", "ORD-1")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if !result.Paid || !result.Applied {
		t.Errorf("expected Paid and Applied, got %+v", result)
	}
	if result.Amount != 950000 || result.CustomerEmail != "ada@example.com" {
		t.Errorf("unexpected verify result: %+v", result)
	}
	if store.status("ORD-1") != models.OrderStatusPaid {
		t.Errorf("order should be paid, got %s", store.status("ORD-1"))
	}
	if email.sendCount() != 1 || whatsapp.sendCount() != 1 {
		t.Errorf("expected one dispatch per channel, got email=%d whatsapp=%d", email.sendCount(), whatsapp.sendCount())
	}
	if email.last.CustomerPhone != "08147134884" {
		t.Errorf("receipt should carry the shipping phone, got %q", email.last.CustomerPhone)
	}
}

func TestVerify_NonSuccess_LeavesOrderPending(t *testing.T) {
	for _, status := range []string{"failed", "abandoned", ""} {
		store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
		gateway := &mockGateway{verifyStatus: status}
		email := &mockChannel{name: "email"}
		orc := NewOrchestrator(store, gateway, []notifications.Channel{email}, "https://shop.example", false)

		result, err := orc.Verify(context.Background(), "user-1", "ORD-1")
		if err != nil {
			t.Fatalf("status %q: non-success is not an error, got %v", status, err)
		}
		if result.Paid {
			t.Errorf("status %q: expected Paid=false", status)
		}
		if store.status("ORD-1") != models.OrderStatusPending {
			t.Errorf("status %q: order must stay pending, got %s", status, store.status("ORD-1"))
		}
		if email.sendCount() != 0 {
			t.Errorf("status %q: no notification expected, got %d", status, email.sendCount())
		}
	}
}

func TestVerify_GuardsBeforeGateway(t *testing.T) {
	store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
	gateway := &mockGateway{verifyStatus: "success"}
	orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

	if _, err := orc.Verify(context.Background(), "user-1", "unknown-ref"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := orc.Verify(context.Background(), "intruder", "ORD-1"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if gateway.verifyCalls != 0 {
		t.Errorf("gateway must not be called for rejected verifies, got %d", gateway.verifyCalls)
	}
}

func TestVerify_GatewayErrorPropagates(t *testing.T) {
	store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
	gateway := &mockGateway{verifyErr: &payments.GatewayError{StatusCode: 503, Message: "service unavailable"}}
	orc := NewOrchestrator(store, gateway, nil, "https://shop.example", false)

	_, err := orc.Verify(context.Background(), "user-1", "ORD-1")
	var gatewayErr *payments.GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if store.status("ORD-1") != models.OrderStatusPending {
		t.Error("an ambiguous gateway state must not change the order")
	}
}

func TestVerify_ConcurrentCallsNotifyOnce(t *testing.T) {
	store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
	gateway := &mockGateway{verifyStatus: "success", verifyAmount: 950000}
	email := &mockChannel{name: "email"}
	orc := NewOrchestrator(store, gateway, []notifications.Channel{email}, "https://shop.example", false)

	const callers = 2
	results := make([]*VerifyResult, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := orc.Verify(context.Background(), "user-1", "ORD-1")
			if err != nil {
				t.Errorf("verify %d failed: %v", i, err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, result := range results {
		if result != nil && result.Applied {
			applied++
		}
		if result != nil && !result.Paid {
			t.Error("both verifies should report the payment as confirmed")
		}
	}
	if applied != 1 {
		t.Errorf("exactly one verify should apply the transition, got %d", applied)
	}
	if email.sendCount() != 1 {
		t.Errorf("expected exactly one notification, got %d", email.sendCount())
	}
	if store.status("ORD-1") != models.OrderStatusPaid {
		t.Errorf("order should be paid, got %s", store.status("ORD-1"))
	}
}

func TestVerify_RenotifyOnReverify(t *testing.T) {
	for _, renotify := range []bool{false, true} {
		store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
		gateway := &mockGateway{verifyStatus: "success"}
		email := &mockChannel{name: "email"}
		orc := NewOrchestrator(store, gateway, []notifications.Channel{email}, "https://shop.example", renotify)

		if _, err := orc.Verify(context.Background(), "user-1", "ORD-1"); err != nil {
			t.Fatalf("first verify failed: %v", err)
		}
		second, err := orc.Verify(context.Background(), "user-1", "ORD-1")
		if err != nil {
			t.Fatalf("re-verify failed: %v", err)
		}

		if second.Applied {
			t.Error("re-verify must never report the transition as applied")
		}
		want := 1
		if renotify {
			want = 2
		}
		if email.sendCount() != want {
			t.Errorf("renotify=%v: expected %d notifications, got %d", renotify, want, email.sendCount())
		}
	}
}

func TestVerify_ChannelFailureDoesNotFailVerification(t *testing.T) {
	store := newMockOrderStore(referenced(pendingOrder("ORD-1", "user-1")))
	gateway := &mockGateway{verifyStatus: "success"}
	email := &mockChannel{name: "email", sendErr: errors.New("smtp down")}
	whatsapp := &mockChannel{name: "whatsapp"}
	orc := NewOrchestrator(store, gateway, []notifications.Channel{email, whatsapp}, "https://shop.example", false)

	result, err := orc.Verify(context.Background(), "user-1", "ORD-1")
	if err != nil {
		t.Fatalf("channel failures must not surface: %v", err)
	}
	if !result.Paid || !result.Applied {
		t.Errorf("payment confirmation should stand, got %+v", result)
	}
	if whatsapp.sendCount() != 1 {
		t.Error("remaining channels should still be attempted")
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	store := newMockOrderStore(pendingOrder("ORD-1", "user-1"))
	gateway := &mockGateway{verifyStatus: "success", verifyAmount: 950000, customerEmail: "ada@example.com"}
	email := &mockChannel{name: "email"}
	whatsapp := &mockChannel{name: "whatsapp"}
	orc := NewOrchestrator(store, gateway, []notifications.Channel{email, whatsapp}, "https://shop.example", false)

	initResult, err := orc.Initialize(context.Background(), "user-1", InitializeParams{
		OrderID: "ORD-1",
		Email:   "ada@example.com",
		Amount:  950000,
	})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if initResult.Reference != "ORD-1" || initResult.AuthorizationURL == "" {
		t.Fatalf("unexpected initialize result: %+v", initResult)
	}

	verifyResult, err := orc.Verify(context.Background(), "user-1", "ORD-1")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !verifyResult.Paid || verifyResult.Amount != 950000 {
		t.Fatalf("unexpected verify result: %+v", verifyResult)
	}

	if store.status("ORD-1") != models.OrderStatusPaid {
		t.Errorf("final status should be paid, got %s", store.status("ORD-1"))
	}
	if email.sendCount() != 1 || whatsapp.sendCount() != 1 {
		t.Errorf("expected one dispatch per channel, got email=%d whatsapp=%d", email.sendCount(), whatsapp.sendCount())
	}
}
