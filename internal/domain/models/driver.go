package models

// PaymentType describes how a driver pays for lessons.
type PaymentType string

const (
	PaymentInstallments PaymentType = "installments"
	PaymentOneTime      PaymentType = "one_time"
	PaymentNone         PaymentType = "none"
)

type Driver struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	TotalPaid   int64       `json:"totalPaid"`
	PaymentType PaymentType `json:"paymentType"`
}

// Installment is a payment checkpoint: by the time the driver has driven
// Hours cumulative hours, the cumulative amount paid should have reached the
// sum of Amount over this and all earlier tiers. Ledgers are always handled
// in ascending Hours order.
type Installment struct {
	ID       int64   `json:"id,omitempty"`
	DriverID int64   `json:"driverId,omitempty"`
	Hours    float64 `json:"hours"`
	Amount   int64   `json:"amount"`
}
