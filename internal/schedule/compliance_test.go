package schedule

import (
	"math"
	"reflect"
	"testing"
	"time"

	"driveschool/internal/domain/models"
)

func installmentDriver(paid int64) models.Driver {
	return models.Driver{ID: 1, Name: "Tester", TotalPaid: paid, PaymentType: models.PaymentInstallments}
}

var testLedger = []models.Installment{
	{Hours: 10, Amount: 1000},
	{Hours: 20, Amount: 2000},
}

func TestSafeHoursLimitFirstUnpaidTier(t *testing.T) {
	if got := SafeHoursLimit(installmentDriver(500), testLedger); got != 10 {
		t.Fatalf("limit = %v, want 10", got)
	}
	// First tier satisfied, second not: cumulative requirement is 3000.
	if got := SafeHoursLimit(installmentDriver(1000), testLedger); got != 20 {
		t.Fatalf("limit = %v, want 20", got)
	}
	if got := SafeHoursLimit(installmentDriver(3000), testLedger); !math.IsInf(got, 1) {
		t.Fatalf("fully paid driver should have no limit, got %v", got)
	}
}

func TestSafeHoursLimitNoConstraint(t *testing.T) {
	if got := SafeHoursLimit(installmentDriver(0), nil); !math.IsInf(got, 1) {
		t.Fatalf("empty ledger should mean no limit, got %v", got)
	}

	oneTime := models.Driver{ID: 2, TotalPaid: 0, PaymentType: models.PaymentOneTime}
	if got := SafeHoursLimit(oneTime, testLedger); !math.IsInf(got, 1) {
		t.Fatalf("non-installment payment type should mean no limit, got %v", got)
	}
}

func fourHourLessons() []models.Lesson {
	return []models.Lesson{
		lesson(1, "2025-05-01", "08:00", "12:00"),
		lesson(2, "2025-05-02", "08:00", "12:00"),
		lesson(3, "2025-05-03", "08:00", "12:00"),
	}
}

func TestEvaluatePaymentDueScenario(t *testing.T) {
	acc := Accumulate(nil, fourHourLessons())
	ev := Evaluate(installmentDriver(500), testLedger, acc)

	if ev.SafeHoursLimit != 10 {
		t.Fatalf("limit = %v, want 10", ev.SafeHoursLimit)
	}

	wantRunning := []float64{4, 8, 12}
	wantDue := []bool{false, false, true}
	if len(ev.Lessons) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(ev.Lessons))
	}
	for i, l := range ev.Lessons {
		if l.RunningHours != wantRunning[i] {
			t.Fatalf("lesson %d running = %v, want %v", i, l.RunningHours, wantRunning[i])
		}
		if l.PaymentDue != wantDue[i] {
			t.Fatalf("lesson %d due = %v, want %v", i, l.PaymentDue, wantDue[i])
		}
	}
}

func TestEvaluateNoConstraintNeverDue(t *testing.T) {
	acc := Accumulate(nil, fourHourLessons())

	for _, d := range []models.Driver{
		{ID: 1, PaymentType: models.PaymentNone},
		{ID: 2, PaymentType: models.PaymentOneTime},
		{ID: 3, PaymentType: models.PaymentInstallments}, // empty ledger
	} {
		ev := Evaluate(d, nil, acc)
		for i, l := range ev.Lessons {
			if l.PaymentDue {
				t.Fatalf("driver %d lesson %d should never be due", d.ID, i)
			}
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	acc := Accumulate(nil, fourHourLessons())
	first := Evaluate(installmentDriver(500), testLedger, acc)
	second := Evaluate(installmentDriver(500), testLedger, acc)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different evaluations")
	}
}

func TestEvaluateMonotonicWithinPass(t *testing.T) {
	lessons := []models.Lesson{}
	for i := int64(1); i <= 8; i++ {
		lessons = append(lessons, lesson(i, "2025-05-01", "08:00", "11:00"))
	}
	acc := Accumulate(nil, lessons)
	ev := Evaluate(installmentDriver(500), testLedger, acc)

	seenDue := false
	for i, l := range ev.Lessons {
		if seenDue && !l.PaymentDue {
			t.Fatalf("payment_due flipped back to false at lesson %d", i)
		}
		if l.PaymentDue {
			seenDue = true
		}
	}
	if !seenDue {
		t.Fatalf("expected at least one due lesson")
	}
}

func TestEvaluateBaselineRaisesRunning(t *testing.T) {
	history := []models.Lesson{lesson(100, "2025-04-01", "08:00", "17:00")} // 9h
	window := []models.Lesson{lesson(1, "2025-05-01", "08:00", "12:00")}   // 4h -> running 13

	acc := Accumulate(history, window)
	ev := Evaluate(installmentDriver(500), testLedger, acc)

	if !ev.Lessons[0].PaymentDue {
		t.Fatalf("baseline should push the first window lesson past the limit")
	}
}

func createdAt(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestTooLate(t *testing.T) {
	l := lesson(1, "2025-05-01", "08:00", "09:00")

	// Booked on the same day: the 08:00 start is before the 10:00 cutoff.
	l.CreatedAt = createdAt(2025, time.May, 1, 7, 30)
	if !TooLate(l) {
		t.Fatalf("same-day early lesson should be too late")
	}

	// Starting after the cutoff on the creation day is fine.
	l.StartTime, l.EndTime = "10:30", "11:30"
	if TooLate(l) {
		t.Fatalf("lesson after cutoff should not be too late")
	}

	// Booked the day before: never too late.
	l.StartTime, l.EndTime = "08:00", "09:00"
	l.CreatedAt = createdAt(2025, time.April, 30, 16, 0)
	if TooLate(l) {
		t.Fatalf("lesson booked a day ahead should not be too late")
	}
}

func TestLateBookingIndependentOfTooLate(t *testing.T) {
	if LateBooking(createdAt(2025, time.May, 1, 13, 59)) {
		t.Fatalf("13:59 booking is not late")
	}
	if !LateBooking(createdAt(2025, time.May, 1, 14, 0)) {
		t.Fatalf("14:00 booking is late")
	}

	// An afternoon booking for a far-future morning lesson: late booking for
	// display, but not too late.
	l := lesson(1, "2025-06-01", "08:00", "09:00")
	l.CreatedAt = createdAt(2025, time.May, 1, 15, 0)
	if TooLate(l) {
		t.Fatalf("future lesson should not be too late")
	}
	if !LateBooking(l.CreatedAt) {
		t.Fatalf("afternoon booking should be flagged late")
	}
}
