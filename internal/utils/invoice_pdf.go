package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"

	"cioccolato_back_end/internal/models"
)

// GenerateSepaQR génère un QR SEPA (format EPC) en base64, prêt à être mis
// dans un <img src="...">. Scanné depuis une app bancaire, il pré-remplit le
// virement de la proforma.
func GenerateSepaQR(iban, bic, beneficiary, reference string, amount float64) (string, error) {
	epc := fmt.Sprintf(`BCD
001
1
SCT
%s
%s
%s
EUR%.2f
%s`, bic, beneficiary, iban, amount, reference)

	png, err := qrcode.Encode(epc, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderProformaPDF imprime la proforma d'une commande en PDF via un Chrome
// headless. Le HTML est passé en data URL, pas besoin de servir une page.
func RenderProformaPDF(order models.Order) ([]byte, error) {
	qr := ""
	iban := os.Getenv("SHOP_IBAN")
	if iban != "" {
		encoded, err := GenerateSepaQR(iban, os.Getenv("SHOP_BIC"),
			os.Getenv("SHOP_BENEFICIARY"), "Ordine "+shortOrderRef(order), order.Total)
		if err == nil {
			qr = encoded
		}
	}

	html := proformaHTML(order, qr)
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 en pouces
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func proformaHTML(order models.Order, qrDataURL string) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`
			<tr>
				<td>%s</td><td>%d</td><td>%.2f€</td><td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrBlock := ""
	if qrDataURL != "" {
		qrBlock = fmt.Sprintf(`
		<div class="qr">
			<p>Paga con bonifico — inquadra il QR:</p>
			<img src="%s" width="140" height="140">
		</div>`, qrDataURL)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="UTF-8">
<style>
	body { font-family: Georgia, serif; color: #2c1a0e; margin: 40px; }
	h1 { color: #4a2c17; border-bottom: 2px solid #4a2c17; padding-bottom: 8px; }
	table { width: 100%%; border-collapse: collapse; margin: 24px 0; }
	th, td { border: 1px solid #d9c9b8; padding: 8px; text-align: left; }
	th { background: #f3ece4; }
	.totals { text-align: right; }
	.qr { margin-top: 32px; }
	.meta { color: #8a7663; font-size: 12px; }
</style>
</head>
<body>
	<h1>Proforma — Ordine %s</h1>
	<p class="meta">Data: %s · Stato: %s</p>

	<table>
		<thead><tr><th>Prodotto</th><th>Quantità</th><th>Prezzo</th><th>Totale</th></tr></thead>
		<tbody>%s</tbody>
	</table>

	<p class="totals">
		Subtotale: %.2f€<br>
		Spedizione: %.2f€<br>
		<strong>Totale: %.2f€</strong>
	</p>

	<p>Spedizione a:<br>%s<br>%s<br>%s %s, %s</p>
	%s
</body>
</html>`,
		shortOrderRef(order), order.CreatedAt.Format("02/01/2006"), order.Status, rows,
		order.Subtotal, order.ShippingCost, order.Total,
		order.ShippingName, order.ShippingStreet, order.ShippingZip, order.ShippingCity, order.ShippingCountry,
		qrBlock)
}
