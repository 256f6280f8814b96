package schedule

import (
	"errors"
	"testing"

	"driveschool/internal/domain/models"
)

func lesson(id int64, date, start, end string) models.Lesson {
	return models.Lesson{ID: id, DriverID: 1, Date: date, StartTime: start, EndTime: end}
}

func TestSortChronologicalTotalOrder(t *testing.T) {
	// Same date and start time: id decides, so any input order converges.
	lessons := []models.Lesson{
		lesson(3, "2025-05-02", "09:00", "10:00"),
		lesson(1, "2025-05-02", "09:00", "10:00"),
		lesson(2, "2025-05-01", "15:00", "16:00"),
	}
	SortChronological(lessons)

	wantIDs := []int64{2, 1, 3}
	for i, want := range wantIDs {
		if lessons[i].ID != want {
			t.Fatalf("position %d: got id %d, want %d", i, lessons[i].ID, want)
		}
	}
}

func TestAccumulateBaselineAndRunning(t *testing.T) {
	history := []models.Lesson{
		lesson(1, "2025-04-01", "09:00", "11:00"), // 2h
		lesson(2, "2025-04-02", "09:00", "10:30"), // 1.5h
	}
	window := []models.Lesson{
		lesson(4, "2025-05-02", "09:00", "10:00"), // out of input order on purpose
		lesson(3, "2025-05-01", "09:00", "11:00"),
	}

	acc := Accumulate(history, window)

	if acc.BaselineHours != 3.5 {
		t.Fatalf("baseline = %v, want 3.5", acc.BaselineHours)
	}
	if len(acc.Lessons) != 2 {
		t.Fatalf("expected 2 window lessons, got %d", len(acc.Lessons))
	}
	if acc.Lessons[0].Lesson.ID != 3 || acc.Lessons[1].Lesson.ID != 4 {
		t.Fatalf("window not chronologically ordered: %d, %d",
			acc.Lessons[0].Lesson.ID, acc.Lessons[1].Lesson.ID)
	}
	if acc.Lessons[0].RunningAfter != 5.5 {
		t.Fatalf("running after first lesson = %v, want 5.5", acc.Lessons[0].RunningAfter)
	}
	if acc.Lessons[1].RunningAfter != 6.5 {
		t.Fatalf("running after second lesson = %v, want 6.5", acc.Lessons[1].RunningAfter)
	}
}

func TestAccumulateNoHistoryDefaultsToZero(t *testing.T) {
	acc := Accumulate(nil, []models.Lesson{lesson(1, "2025-05-01", "09:00", "10:00")})
	if acc.BaselineHours != 0 {
		t.Fatalf("baseline = %v, want 0", acc.BaselineHours)
	}
}

func TestAccumulateSkipsBadLessonsOnly(t *testing.T) {
	window := []models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "25:00", "26:00"), // bad format
		lesson(3, "2025-05-01", "12:00", "11:00"), // negative interval
		lesson(4, "2025-05-02", "09:00", "10:00"),
	}

	acc := Accumulate(nil, window)

	if len(acc.Lessons) != 2 {
		t.Fatalf("expected 2 valid lessons, got %d", len(acc.Lessons))
	}
	if len(acc.Skipped) != 2 {
		t.Fatalf("expected 2 skipped lessons, got %d", len(acc.Skipped))
	}
	if acc.Skipped[0].LessonID != 2 || !errors.Is(acc.Skipped[0].Err, ErrInvalidTimeFormat) {
		t.Fatalf("unexpected first skip: %v", acc.Skipped[0])
	}
	if acc.Skipped[1].LessonID != 3 || !errors.Is(acc.Skipped[1].Err, ErrInvalidInterval) {
		t.Fatalf("unexpected second skip: %v", acc.Skipped[1])
	}
	// The bad records contribute no hours.
	if acc.Lessons[1].RunningAfter != 2 {
		t.Fatalf("running = %v, want 2", acc.Lessons[1].RunningAfter)
	}
}
