package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Order struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	Product      string    `json:"product"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	Comment      string    `json:"comment"`
}

const (
	OrderStatusPending = "Pending"

	// ProductUnspecified replaces a blank product on submission.
	ProductUnspecified = "unspecified"

	// DisplayTimeLayout is how order timestamps are shown and stored as text.
	DisplayTimeLayout = "02/01/2006 15:04"
)

// NormalizeCustomerName trims and title-cases a submitted name. Every run of
// letters is a word, so "o'neil" becomes "O'Neil" and "ana-maría" becomes
// "Ana-María".
func NormalizeCustomerName(name string) string {
	name = strings.TrimSpace(name)

	// Casers are stateful, one per call.
	caser := cases.Title(language.Spanish)

	var b strings.Builder
	b.Grow(len(name))
	start := -1
	for i, r := range name {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(name[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(name[start:]))
	}

	return b.String()
}

// ParsePrice parses a submitted price. Anything unparseable, negative or
// non-finite becomes 0.
func ParsePrice(raw string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// NewPendingOrder builds the record persisted for a new submission.
func NewPendingOrder(name, phone, product, price, image string, now time.Time) Order {
	product = strings.TrimSpace(product)
	if product == "" {
		product = ProductUnspecified
	}

	return Order{
		CustomerName: NormalizeCustomerName(name),
		Phone:        strings.TrimSpace(phone),
		Product:      product,
		Price:        ParsePrice(price),
		Image:        strings.TrimSpace(image),
		Status:       OrderStatusPending,
		CreatedAt:    now,
		Comment:      "",
	}
}

func (o Order) CreatedAtDisplay() string {
	if o.CreatedAt.IsZero() {
		return ""
	}
	return o.CreatedAt.Format(DisplayTimeLayout)
}
