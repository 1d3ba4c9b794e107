package webhook

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/feebridge/feebridge/internal/domain/record"
)

// EventType represents the type of gateway webhook event
type EventType string

const (
	EventPaymentCaptured EventType = "payment.captured"
	EventPaymentFailed   EventType = "payment.failed"
)

// Event represents a gateway webhook event, parsed fresh per request and
// discarded after handling
type Event struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}

// Payload wraps the payment entity the way the gateway nests it
type Payload struct {
	Payment PayloadPayment `json:"payment"`
}

type PayloadPayment struct {
	Entity PaymentEntity `json:"entity"`
}

// PaymentEntity is the gateway's payment object. Amount is in minor
// currency units (paise).
type PaymentEntity struct {
	ID       string        `json:"id"`
	OrderID  string        `json:"order_id"`
	Amount   int64         `json:"amount"`
	Currency string        `json:"currency"`
	Status   string        `json:"status"`
	Contact  string        `json:"contact"`
	Email    string        `json:"email"`
	Notes    FlexibleNotes `json:"notes"`
}

// FlexibleNotes handles both array and object formats from the gateway,
// which sometimes sends an empty array [] instead of an empty object {}
type FlexibleNotes map[string]interface{}

// UnmarshalJSON implements custom unmarshaling to handle both [] and {}
// formats
func (fn *FlexibleNotes) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err == nil {
		*fn = m
		return nil
	}

	// Fall back to array format; any array (empty or not) means no notes
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err == nil {
		*fn = FlexibleNotes{}
		return nil
	}

	*fn = FlexibleNotes{}
	return nil
}

// String looks up a note by key and returns it as a string, or the empty
// string when the key is absent or not a string. All nested reads from the
// gateway payload go through this so a missing level defaults instead of
// panicking.
func (fn FlexibleNotes) String(key string) string {
	if fn == nil {
		return ""
	}
	if v, ok := fn[key].(string); ok {
		return v
	}
	return ""
}

// ToFeeRecord maps the gateway payment onto the normalized record persisted
// in the external store. The amount converts from minor currency units to
// major units.
func (p *PaymentEntity) ToFeeRecord() *record.FeeRecord {
	return &record.FeeRecord{
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Amount:          decimal.NewFromInt(p.Amount).Div(decimal.NewFromInt(100)),
		Currency:        p.Currency,
		Status:          p.Status,
		Contact:         p.Contact,
		Email:           p.Email,
		StudentName:     p.Notes.String("student_name"),
		AdmissionNumber: p.Notes.String("admission_number"),
		Branch:          p.Notes.String("branch"),
	}
}
