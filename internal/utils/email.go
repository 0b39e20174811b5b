package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"cioccolato_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie la confirmation de commande en HTML, avec
// la proforma PDF en pièce jointe si elle a pu être générée.
func SendOrderConfirmationEmail(to string, order models.Order, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@cioccolato.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Conferma ordine %s", shortOrderRef(order)))
	msg.SetBodyString(mail.TypeTextHTML, OrderConfirmationHTML(order))

	if pdfAttachment != nil {
		msg.AttachReader("proforma_"+shortOrderRef(order)+".pdf", bytes.NewReader(pdfAttachment))
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de la confirmation de commande à", to)
	return client.DialAndSend(msg)
}

// OrderConfirmationHTML génère le corps HTML de la confirmation.
func OrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #e8ddd3;">%s</td>
				<td style="padding: 8px; border: 1px solid #e8ddd3;">%d</td>
				<td style="padding: 8px; border: 1px solid #e8ddd3;">%.2f€</td>
				<td style="padding: 8px; border: 1px solid #e8ddd3;">%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	shippingLine := fmt.Sprintf("%.2f€", order.ShippingCost)
	if order.ShippingCost == 0 {
		shippingLine = "Offerte"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="it">
<head>
	<meta charset="UTF-8">
	<title>Conferma ordine</title>
</head>
<body style="font-family: Georgia, serif; background-color: #faf6f1; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 24px; border-radius: 8px;">
		<h2 style="color: #4a2c17;">Grazie per il tuo ordine!</h2>
		<p>Il tuo ordine è stato confermato e verrà preparato con cura.</p>

		<h3 style="color: #4a2c17;">Riepilogo</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 16px 0;">
			<thead>
				<tr style="background-color: #f3ece4;">
					<th style="padding: 8px; text-align: left; border: 1px solid #e8ddd3;">Prodotto</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #e8ddd3;">Quantità</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #e8ddd3;">Prezzo</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #e8ddd3;">Totale</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p>Subtotale: <strong>%.2f€</strong><br>
		Spedizione: <strong>%s</strong><br>
		Totale: <strong>%.2f€</strong></p>

		<p style="color: #8a7663; font-size: 13px;">
			Spedizione a: %s, %s, %s %s, %s
		</p>
	</div>
</body>
</html>`, itemsHTML, order.Subtotal, shippingLine, order.Total,
		order.ShippingName, order.ShippingStreet, order.ShippingZip, order.ShippingCity, order.ShippingCountry)
}

func shortOrderRef(order models.Order) string {
	id := order.ID.String()
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
