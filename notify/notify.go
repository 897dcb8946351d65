// Package notify builds chat-composer links that open WhatsApp with a
// prefilled message. Nothing is sent from the server.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"precojusto-backend/models"
)

// DefaultPhone is the placeholder recipient used by the app.
const DefaultPhone = "5500000000000"

const baseURL = "https://wa.me/"

// componentUnescape rewrites url.QueryEscape output to match a browser's
// encodeURIComponent, so links match the ones the web client builds.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// Link returns the composer URL for phone with message prefilled.
// Non-digit characters are stripped from phone; an empty phone falls back
// to DefaultPhone.
func Link(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		digits = DefaultPhone
	}
	return baseURL + digits + "?text=" + encodeComponent(message)
}

// PriceAlertMessage asks to be told when the product gets cheaper.
func PriceAlertMessage(productName string) string {
	return fmt.Sprintf("Olá! Gostaria de receber alertas de preço baixo para o produto: %s. Por favor, me avise quando o valor cair! 🔔", productName)
}

// OfferMessage announces a branch's price for a product.
func OfferMessage(productName string, price float64, branch models.Branch) string {
	return fmt.Sprintf("🔥 OFERTA IMPERDÍVEL! O %s está por apenas R$ %s no %s! Unidade %s. 🚀",
		productName, decimal.NewFromFloat(price).StringFixed(2), branch.Name, branch.City)
}
