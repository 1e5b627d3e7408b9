package notifications

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// WhatsAppLink builds a pre-filled wa.me deep link for the order
// confirmation. It constructs the link only, actual delivery happens from the
// business WhatsApp account; the two business numbers are logged alongside
// the link for follow-up.
type WhatsAppLink struct {
	countryCode    string
	businessPhone1 string
	businessPhone2 string
}

func NewWhatsAppLink(countryCode, businessPhone1, businessPhone2 string) *WhatsAppLink {
	return &WhatsAppLink{
		countryCode:    countryCode,
		businessPhone1: businessPhone1,
		businessPhone2: businessPhone2,
	}
}

func (w *WhatsAppLink) Name() string { return "whatsapp" }

func (w *WhatsAppLink) Send(ctx context.Context, receipt Receipt) error {
	if receipt.CustomerPhone == "" || receipt.CustomerName == "" || receipt.OrderID == "" {
		return fmt.Errorf("missing required fields for whatsapp notification")
	}

	link := w.BuildLink(receipt)

	log.Printf("WhatsApp notification prepared for order %s: %s", receipt.OrderID, link)
	log.Println("Business phones for follow-up:", w.businessPhone1, w.businessPhone2)
	return nil
}

// BuildLink returns the wa.me URL targeting the customer's normalized phone
// number with the confirmation message pre-filled.
func (w *WhatsAppLink) BuildLink(receipt Receipt) string {
	return "https://wa.me/" + w.NormalizePhone(receipt.CustomerPhone) +
		"?text=" + url.QueryEscape(confirmationMessage(receipt))
}

// NormalizePhone reduces a phone number to bare digits with a country code:
// spaces and dashes are stripped, a leading 0 is replaced by the configured
// country code, and a leading + is dropped.
func (w *WhatsAppLink) NormalizePhone(phone string) string {
	normalized := strings.ReplaceAll(phone, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	switch {
	case strings.HasPrefix(normalized, "0"):
		normalized = w.countryCode + normalized[1:]
	case strings.HasPrefix(normalized, "+"):
		normalized = normalized[1:]
	}
	return normalized
}

func confirmationMessage(receipt Receipt) string {
	var items strings.Builder
	for _, item := range receipt.Items {
		fmt.Fprintf(&items, "• %s (Size %d) x%d\n", item.ProductName, item.Size, item.Quantity)
	}
	itemsList := strings.TrimRight(items.String(), "\n")
	if itemsList == "" {
		itemsList = "Order details"
	}

	return fmt.Sprintf(
		"🎉 *Order Confirmation*\n\n"+
			"Hi %s,\n\n"+
			"Thank you for your order! Your order #%s has been received.\n\n"+
			"*Order Details:*\n%s\n\n"+
			"*Total:* ₦%s\n\n"+
			"You can reply to this message to track your order or ask any questions.\n\n"+
			"Thank you for shopping with us! 🙏",
		receipt.CustomerName,
		ShortOrderRef(receipt.OrderID),
		itemsList,
		FormatNaira(receipt.TotalAmount),
	)
}
