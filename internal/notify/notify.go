// Package notify fans out order notifications over email. Both channels
// are best-effort side channels: a delivery failure is logged and never
// touches the recorded order.
package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"faral-orders/internal/models"
	"faral-orders/internal/partition"
	"faral-orders/internal/schema"
)

// ErrNoRecipient marks a customer notification that was skipped because
// the contact string carries no parseable email. A skip, not a failure.
var ErrNoRecipient = errors.New("no customer email in contact")

// Mailer sends one plain-text message. Production uses SMTP; tests inject
// a recording or failing fake.
type Mailer interface {
	Send(to, subject, body string) error
}

type Dispatcher struct {
	mailer         Mailer
	adminAddr      string
	supportContact string
}

func NewDispatcher(mailer Mailer, adminAddr, supportContact string) *Dispatcher {
	return &Dispatcher{mailer: mailer, adminAddr: adminAddr, supportContact: supportContact}
}

// Dispatch attempts both notifications independently. Neither failure
// prevents the other, and neither is surfaced to the caller.
func (d *Dispatcher) Dispatch(o models.Order, p partition.ID) {
	if err := d.NotifyAdmin(o, p); err != nil {
		logrus.WithError(err).WithField("partition", string(p)).Warn("admin notification failed")
	}
	if err := d.NotifyCustomer(o); err != nil {
		if errors.Is(err, ErrNoRecipient) {
			logrus.WithField("contact", o.Contact).Info("customer notification skipped")
		} else {
			logrus.WithError(err).Warn("customer notification failed")
		}
	}
}

// NotifyAdmin sends the full order detail to the fixed operations address.
func (d *Dispatcher) NotifyAdmin(o models.Order, p partition.ID) error {
	subject := fmt.Sprintf("New Faral Order - %s - %s", o.OrderType, o.Name)
	return d.mailer.Send(d.adminAddr, subject, adminBody(o, p))
}

// NotifyCustomer sends a confirmation to the email component of the
// contact string, when one is present and parseable.
func (d *Dispatcher) NotifyCustomer(o models.Order) error {
	to, ok := o.CustomerEmail()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoRecipient, o.Contact)
	}
	subject := "Your Faral Order Confirmation"
	return d.mailer.Send(to, subject, d.customerBody(o))
}

// adminBody is a faithful projection of the ledger row: every non-zero
// product line and every total with the same defaults the row was built
// with.
func adminBody(o models.Order, p partition.ID) string {
	var b strings.Builder
	b.WriteString("New Order Received!\n\n")
	b.WriteString("Order Details:\n--------------\n")
	fmt.Fprintf(&b, "Order Type: %s\n", o.OrderType)
	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Contact: %s\n", o.Contact)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)
	fmt.Fprintf(&b, "Country: %s\n", o.Country)
	fmt.Fprintf(&b, "Dispatch Date: %s\n\n", o.DispatchDate)
	b.WriteString("Products Ordered:\n-----------------\n")
	b.WriteString(o.ProductLines())
	b.WriteString("\n\n")
	writeSummary(&b, o)
	fmt.Fprintf(&b, "\nDestination: %s (%s)\n", p, p.TableName())
	fmt.Fprintf(&b, "Timestamp: %s\n", o.Timestamp.Format(schema.TimeLayout))
	return b.String()
}

func (d *Dispatcher) customerBody(o models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", o.Name)
	b.WriteString("Thank you for your order! Here is what we have recorded:\n\n")
	b.WriteString("Products Ordered:\n-----------------\n")
	b.WriteString(o.ProductLines())
	b.WriteString("\n\n")
	writeSummary(&b, o)
	fmt.Fprintf(&b, "\nDispatch Date: %s\n\n", o.DispatchDate)
	b.WriteString("Please store the faral in an airtight container away from\n")
	b.WriteString("direct sunlight and consume within three weeks.\n\n")
	fmt.Fprintf(&b, "Questions? Reach us at %s.\n", d.supportContact)
	return b.String()
}

func writeSummary(b *strings.Builder, o models.Order) {
	b.WriteString("Order Summary:\n--------------\n")
	fmt.Fprintf(b, "Total Boxes: %d\n", o.TotalBoxes)
	fmt.Fprintf(b, "Total Weight: %v kg\n", o.TotalWeightKg)
	fmt.Fprintf(b, "Subtotal: ₹%v\n", o.Subtotal)
	fmt.Fprintf(b, "Delivery Fee: %s\n", o.DeliveryFee.Display())
	fmt.Fprintf(b, "Grand Total: ₹%v\n", o.GrandTotal)
	fmt.Fprintf(b, "Payment Status: %s\n", o.PaymentStatus)
}
