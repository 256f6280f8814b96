package schedule

import (
	"encoding/json"
	"math"
	"time"

	"driveschool/internal/domain/models"
)

const (
	// bookingCutoffMin: lessons scheduled before 10:00 on their creation day
	// count as booked too late.
	bookingCutoffMin = 10 * 60
	// lateBookingHour: bookings created at or after this hour get the
	// late-booking presentation treatment.
	lateBookingHour = 14
)

// HoursLimit is a safe-hours limit that marshals +Inf as null, since JSON has
// no infinity and clients read null as "no limit".
type HoursLimit float64

func (h HoursLimit) MarshalJSON() ([]byte, error) {
	if h.Unlimited() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(h))
}

// Unlimited reports whether the driver has no payment constraint.
func (h HoursLimit) Unlimited() bool {
	return math.IsInf(float64(h), 1)
}

// EvaluatedLesson is a lesson augmented with the compliance flags.
type EvaluatedLesson struct {
	models.Lesson
	Hours        float64 `json:"hours"`
	RunningHours float64 `json:"runningHours"`
	PaymentDue   bool    `json:"paymentDue"`
	TooLate      bool    `json:"tooLate"`
	LateBooking  bool    `json:"lateBooking"`
}

// Evaluation is the full compliance result for one driver and window.
type Evaluation struct {
	DriverID       int64             `json:"driverId"`
	SafeHoursLimit HoursLimit        `json:"safeHoursLimit"`
	BaselineHours  float64           `json:"baselineHours"`
	Lessons        []EvaluatedLesson `json:"lessons"`
	Skipped        []LessonError     `json:"skipped,omitempty"`
}

// SafeHoursLimit walks the installment ledger in ascending hours order,
// summing the required amounts. The first tier whose cumulative requirement
// exceeds what the driver has paid sets the limit. A driver without an
// installment plan has no limit (+Inf).
//
// The cumulative reading of "amount" is one of two interpretations seen in
// the business rules; see DESIGN.md before changing it.
func SafeHoursLimit(d models.Driver, installments []models.Installment) float64 {
	if d.PaymentType != models.PaymentInstallments || len(installments) == 0 {
		return math.Inf(1)
	}

	var required int64
	for _, inst := range installments {
		required += inst.Amount
		if d.TotalPaid < required {
			return inst.Hours
		}
	}
	return math.Inf(1)
}

// Evaluate flags each accumulated lesson as payment-due when its running
// hours pass the safe limit. Pure: identical inputs always yield identical
// flags, and within one pass PaymentDue is monotonic along the lesson order.
// A later payment raises the limit and can flip flags back on the next pass;
// nothing is retained between calls.
func Evaluate(d models.Driver, installments []models.Installment, acc Accumulation) Evaluation {
	limit := SafeHoursLimit(d, installments)

	ev := Evaluation{
		DriverID:       d.ID,
		SafeHoursLimit: HoursLimit(limit),
		BaselineHours:  acc.BaselineHours,
		Skipped:        acc.Skipped,
	}

	for _, rl := range acc.Lessons {
		ev.Lessons = append(ev.Lessons, EvaluatedLesson{
			Lesson:       rl.Lesson,
			Hours:        rl.Hours,
			RunningHours: rl.RunningAfter,
			PaymentDue:   rl.RunningAfter > limit,
			TooLate:      TooLate(rl.Lesson),
			LateBooking:  LateBooking(rl.Lesson.CreatedAt),
		})
	}

	return ev
}

// TooLate reports whether the lesson was booked past the cutoff: its
// scheduled start falls before 10:00 on the day the booking was created.
// Malformed lessons are never too late; they get excluded elsewhere.
func TooLate(l models.Lesson) bool {
	day, err := time.ParseInLocation("2006-01-02", l.Date, time.Local)
	if err != nil {
		return false
	}
	startMin, err := ParseClock(l.StartTime)
	if err != nil {
		return false
	}
	start := day.Add(time.Duration(startMin) * time.Minute)

	created := l.CreatedAt.In(time.Local)
	cutoff := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.Local).
		Add(bookingCutoffMin * time.Minute)

	return start.Before(cutoff)
}

// LateBooking is the presentation-only rule for bookings created in the
// afternoon. Kept separate from TooLate; the two must not be merged.
func LateBooking(createdAt time.Time) bool {
	return createdAt.In(time.Local).Hour() >= lateBookingHour
}
