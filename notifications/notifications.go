// Package notifications holds the post-payment side channels. Every channel
// is best effort: the caller logs failures and keeps going, a confirmed
// payment is never held hostage by a receipt.
package notifications

import (
	"context"
	"strconv"
	"strings"

	"github.com/watchDOGGGG/relook-online-store/models"
)

type Channel interface {
	Name() string
	Send(ctx context.Context, receipt Receipt) error
}

// Receipt carries everything a channel needs to confirm an order. Item names
// and prices are the snapshots captured at checkout.
type Receipt struct {
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	OrderID         string
	Items           []models.OrderItem
	TotalAmount     int64
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
}

func ReceiptFromOrder(order *models.Order) Receipt {
	return Receipt{
		CustomerEmail:   order.ShippingEmail,
		CustomerName:    order.ShippingFirstName + " " + order.ShippingLastName,
		CustomerPhone:   order.ShippingPhone,
		OrderID:         order.ID,
		Items:           order.OrderItems,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
	}
}

// ShortOrderRef is the customer-facing order reference, the first eight
// characters of the order id in upper case.
func ShortOrderRef(orderID string) string {
	ref := orderID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return strings.ToUpper(ref)
}

// FormatNaira renders a kobo amount as naira with thousands separators,
// keeping kobo digits only when they are non-zero.
func FormatNaira(kobo int64) string {
	naira := kobo / 100
	rem := kobo % 100

	formatted := groupThousands(naira)
	if rem != 0 {
		formatted += "." + pad2(rem)
	}
	return formatted
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
