package record

import (
	"github.com/shopspring/decimal"
)

// FeeRecord is the normalized row persisted in the external record store for
// one captured payment. At most one record exists per PaymentID; the
// repository enforces the duplicate check before every insert.
type FeeRecord struct {
	// The payment_id is the gateway-assigned unique payment identifier
	PaymentID string `json:"payment_id"`
	// The order_id is the gateway order the payment settles
	OrderID string `json:"order_id"`
	// The amount is in major currency units (rupees), converted from the
	// gateway's minor units
	Amount decimal.Decimal `json:"amount"`
	// The currency field uses a three-letter ISO code (INR, USD, etc.)
	Currency string `json:"currency"`
	// The status reported by the gateway (captured, failed, etc.)
	Status string `json:"status"`
	// Payer contact number as supplied by the gateway
	Contact string `json:"contact"`
	// Payer email as supplied by the gateway
	Email string `json:"email"`
	// Application-supplied metadata carried in the gateway notes
	StudentName     string `json:"student_name"`
	AdmissionNumber string `json:"admission_number"`
	Branch          string `json:"branch"`
}

// FieldMap returns the record as the field map the store's create endpoint
// expects
func (r *FeeRecord) FieldMap() map[string]interface{} {
	return map[string]interface{}{
		"payment_id":       r.PaymentID,
		"order_id":         r.OrderID,
		"amount":           r.Amount.StringFixed(2),
		"currency":         r.Currency,
		"status":           r.Status,
		"contact":          r.Contact,
		"email":            r.Email,
		"student_name":     r.StudentName,
		"admission_number": r.AdmissionNumber,
		"branch":           r.Branch,
	}
}
