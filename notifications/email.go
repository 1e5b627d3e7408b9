package notifications

import (
	"context"
	"fmt"
	"html/template"

	"github.com/watchDOGGGG/relook-online-store/utils"
)

var receiptTemplate = template.Must(template.New("order_receipt").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Order Confirmation</title></head>
  <body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,sans-serif;background-color:#f4f4f4;">
    <div style="max-width:600px;margin:0 auto;padding:20px;">
      <div style="background-color:#ffffff;border-radius:12px;overflow:hidden;">
        <div style="background-color:#000000;padding:30px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;font-size:28px;">RELOOKSTORES</h1>
        </div>
        <div style="padding:30px;">
          <h2 style="color:#333;margin:0 0 10px;">Order Confirmed!</h2>
          <p style="color:#666;margin:0 0 25px;">Thank you for your purchase, {{.CustomerName}}!</p>
          <div style="background-color:#f8f8f8;border-radius:8px;padding:15px;margin-bottom:25px;">
            <p style="margin:0;color:#666;font-size:14px;">
              <strong>Order Reference:</strong> <span style="font-family:monospace;">{{.OrderRef}}</span>
            </p>
          </div>
          <h3 style="color:#333;margin-bottom:15px;">Order Details</h3>
          <table style="width:100%;border-collapse:collapse;margin-bottom:25px;">
            <thead>
              <tr style="background-color:#f8f8f8;">
                <th style="padding:12px;text-align:left;">Item</th>
                <th style="padding:12px;text-align:center;">Size</th>
                <th style="padding:12px;text-align:center;">Qty</th>
                <th style="padding:12px;text-align:right;">Price</th>
              </tr>
            </thead>
            <tbody>
              {{range .Items}}
              <tr>
                <td style="padding:12px;border-bottom:1px solid #eee;">{{.Name}}</td>
                <td style="padding:12px;border-bottom:1px solid #eee;text-align:center;">Size {{.Size}}</td>
                <td style="padding:12px;border-bottom:1px solid #eee;text-align:center;">{{.Quantity}}</td>
                <td style="padding:12px;border-bottom:1px solid #eee;text-align:right;">₦{{.LineTotal}}</td>
              </tr>
              {{end}}
            </tbody>
            <tfoot>
              <tr>
                <td colspan="3" style="padding:15px 12px;text-align:right;font-weight:bold;">Total:</td>
                <td style="padding:15px 12px;text-align:right;font-weight:bold;">₦{{.Total}}</td>
              </tr>
            </tfoot>
          </table>
          <h3 style="color:#333;margin-bottom:10px;">Shipping To</h3>
          <p style="color:#666;margin:0;">{{.ShippingAddress}}, {{.ShippingCity}}, {{.ShippingState}}</p>
        </div>
      </div>
    </div>
  </body>
</html>`))

type receiptTemplateData struct {
	CustomerName    string
	OrderRef        string
	Items           []receiptLine
	Total           string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
}

type receiptLine struct {
	Name      string
	Size      int
	Quantity  int
	LineTotal string
}

// EmailReceipt delivers the order confirmation email over SMTP.
type EmailReceipt struct {
	mailer *utils.Mailer
}

func NewEmailReceipt(mailer *utils.Mailer) *EmailReceipt {
	return &EmailReceipt{mailer: mailer}
}

func (e *EmailReceipt) Name() string { return "email" }

func (e *EmailReceipt) Send(ctx context.Context, receipt Receipt) error {
	if receipt.CustomerEmail == "" || receipt.CustomerName == "" || receipt.OrderID == "" {
		return fmt.Errorf("missing required fields for email receipt")
	}

	data := receiptTemplateData{
		CustomerName:    receipt.CustomerName,
		OrderRef:        ShortOrderRef(receipt.OrderID),
		Total:           FormatNaira(receipt.TotalAmount),
		ShippingAddress: receipt.ShippingAddress,
		ShippingCity:    receipt.ShippingCity,
		ShippingState:   receipt.ShippingState,
	}
	for _, item := range receipt.Items {
		data.Items = append(data.Items, receiptLine{
			Name:      item.ProductName,
			Size:      item.Size,
			Quantity:  item.Quantity,
			LineTotal: FormatNaira(item.ProductPrice * int64(item.Quantity)),
		})
	}

	subject := "Order Confirmation - " + data.OrderRef
	return e.mailer.Send(receipt.CustomerEmail, subject, receiptTemplate, data)
}
