package email

import (
	"fmt"
	"html"
	"strings"
)

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	Name     string
	Quantity int
	Price    int64
}

// StatusUpdate is everything the status email shows
type StatusUpdate struct {
	CustomerName string
	OrderID      string
	Status       string
	Message      string
	Total        int64
	Items        []OrderItem
}

// BuildStatusUpdateBody builds the HTML body for an order status email
func BuildStatusUpdateBody(u StatusUpdate) string {
	greeting := "Hello,"
	if u.CustomerName != "" {
		greeting = fmt.Sprintf("Hello %s,", html.EscapeString(u.CustomerName))
	}

	var itemsHTML strings.Builder
	for _, item := range u.Items {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">Rp%s</td>
			</tr>`,
			html.EscapeString(item.Name),
			item.Quantity,
			formatNumber(item.Price*int64(item.Quantity)),
		))
	}

	var itemsSection string
	if len(u.Items) > 0 {
		itemsSection = fmt.Sprintf(`
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Product</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">Qty</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Subtotal</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>`, itemsHTML.String())
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Order update: %s</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">%s</p>
		<p>%s</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>
%s
		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 14px; color: #666;">Order total</span>
			<span style="font-size: 24px; font-weight: bold; color: #667eea; margin-left: 10px;">Rp%s</span>
		</div>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This email was sent automatically. Contact support if you have any questions.
		</p>
	</div>
</body>
</html>`,
		html.EscapeString(u.Status),
		greeting,
		html.EscapeString(u.Message),
		html.EscapeString(u.OrderID),
		itemsSection,
		formatNumber(u.Total),
	)
}

// formatNumber formats a number with dot separators, as rupiah amounts are written
func formatNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
		result.WriteString(".")
	}

	for i := remainder; i < len(str); i += 3 {
		result.WriteString(str[i : i+3])
		if i+3 < len(str) {
			result.WriteString(".")
		}
	}

	return result.String()
}
