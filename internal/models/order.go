package models

import (
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PaymentConfirmed is the only payment status this pipeline accepts: payment
// is settled before an order ever reaches intake.
const PaymentConfirmed = "Payment Confirmed"

// ContactDelimiter separates the phone and email components of the contact
// string, e.g. "9990001111/user@example.com".
const ContactDelimiter = "/"

// Order is the canonical unit the pipeline processes. It is built once from
// an inbound submission, validated, then persisted as a single immutable
// ledger row; nothing mutates it after acceptance.
type Order struct {
	Timestamp    time.Time      `json:"timestamp"    validate:"required"`
	OrderType    string         `json:"orderType"    validate:"required"`
	Name         string         `json:"name"         validate:"required"`
	Contact      string         `json:"contact"      validate:"required"`
	Address      string         `json:"address"`
	Country      string         `json:"country"`
	DispatchDate string         `json:"dispatchDate"`
	Products     map[string]int `json:"products"     validate:"required,min=1"`

	TotalBoxes    int     `json:"totalBoxes"    validate:"gte=0"`
	TotalWeightKg float64 `json:"totalWeightKg" validate:"gte=0"`
	Subtotal      float64 `json:"subtotal"      validate:"gte=0"`
	DeliveryFee   Fee     `json:"deliveryFee"`
	GrandTotal    float64 `json:"grandTotal"    validate:"gte=0"`

	PaymentStatus string `json:"paymentStatus"`
}

// Normalize resolves every defaulted field once, at the pipeline boundary.
// Numeric totals already default to zero; the fee keeps its own sentinel.
func (o *Order) Normalize() {
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now().UTC()
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentConfirmed
	}
}

// NonZeroProducts returns the ordered line items with quantity > 0, sorted
// by product name. A zero quantity is the same as the product being absent.
func (o Order) NonZeroProducts() []string {
	names := make([]string, 0, len(o.Products))
	for name, qty := range o.Products {
		if qty > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ProductLines renders the non-zero line items as "name: quantity" pairs,
// one per line. This is the free-text "Products Ordered" ledger column and
// the product section of both notification emails.
func (o Order) ProductLines() string {
	names := o.NonZeroProducts()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+": "+strconv.Itoa(o.Products[name]))
	}
	return strings.Join(lines, "\n")
}

// CustomerEmail extracts a parseable email component from the contact
// string. A contact without the delimiter has no recipient; that is a
// skip, not an error.
func (o Order) CustomerEmail() (string, bool) {
	if !strings.Contains(o.Contact, ContactDelimiter) {
		return "", false
	}
	for _, part := range strings.Split(o.Contact, ContactDelimiter) {
		part = strings.TrimSpace(part)
		if part == "" || !strings.Contains(part, "@") {
			continue
		}
		if addr, err := mail.ParseAddress(part); err == nil {
			return addr.Address, true
		}
	}
	return "", false
}
