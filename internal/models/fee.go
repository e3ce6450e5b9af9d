package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Sentinels written to the ledger in place of a numeric delivery fee.
// A missing fee is "not yet determined"; an explicit zero is zero-rated.
const (
	FeePending = "To be informed"
	FeeFree    = "Free delivery"
)

// Fee is the delivery fee as submitted by the form. The field arrives as a
// JSON number, a free-form string ("₹80"), null, or not at all; the ledger
// never records a bare 0 for a fee that was simply absent.
type Fee struct {
	set  bool
	text string
}

func FeeFrom(s string) Fee {
	if s == "" {
		return Fee{}
	}
	return Fee{set: true, text: s}
}

func FeeAmount(amount float64) Fee {
	return Fee{set: true, text: strconv.FormatFloat(amount, 'f', -1, 64)}
}

func (f Fee) Set() bool { return f.set }

// Display is the value recorded in the ledger and quoted in notifications.
func (f Fee) Display() string {
	if !f.set {
		return FeePending
	}
	if f.text == "0" {
		return FeeFree
	}
	return f.text
}

func (f *Fee) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = Fee{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FeeFrom(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("delivery fee must be a number or a string: %w", err)
	}
	*f = FeeAmount(n)
	return nil
}

func (f Fee) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.text)
}
