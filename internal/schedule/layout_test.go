package schedule

import (
	"reflect"
	"testing"

	"driveschool/internal/domain/models"
)

var unitGeom = Geometry{UnitWidth: 100, Gap: 10, Padding: 5}

func TestPackDayEmptyAndSingleton(t *testing.T) {
	layout, skipped := PackDay(nil, unitGeom)
	if len(layout.Boxes) != 0 || layout.MaxColumns != 0 || layout.TotalWidth != 0 {
		t.Fatalf("empty input should produce empty layout, got %+v", layout)
	}
	if len(skipped) != 0 {
		t.Fatalf("empty input should skip nothing")
	}

	layout, _ = PackDay([]models.Lesson{lesson(1, "2025-05-01", "09:00", "10:00")}, unitGeom)
	box, ok := layout.Boxes[1]
	if !ok {
		t.Fatalf("singleton lesson missing from layout")
	}
	if box.Column != 0 || box.Span != 1 {
		t.Fatalf("singleton should fill one full column, got %+v", box)
	}
	if layout.MaxColumns != 1 {
		t.Fatalf("maxColumns = %d, want 1", layout.MaxColumns)
	}
	if box.Left != 5 || box.Width != 100 {
		t.Fatalf("geometry wrong: %+v", box)
	}
	if layout.TotalWidth != 110 { // 2*5 + 100
		t.Fatalf("totalWidth = %v, want 110", layout.TotalWidth)
	}
}

func TestPackDayTwoOverlapping(t *testing.T) {
	layout, _ := PackDay([]models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "09:30", "10:30"),
	}, unitGeom)

	if layout.MaxColumns != 2 {
		t.Fatalf("maxColumns = %d, want 2", layout.MaxColumns)
	}
	if layout.Boxes[1].Column == layout.Boxes[2].Column {
		t.Fatalf("overlapping lessons share a column")
	}
}

func TestPackDayChainReusesColumns(t *testing.T) {
	// 09:00-10:00 and 10:00-11:00 touch but do not overlap; the 09:30-10:30
	// lesson overlaps both.
	layout, _ := PackDay([]models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "10:00", "11:00"),
		lesson(3, "2025-05-01", "09:30", "10:30"),
	}, unitGeom)

	if layout.MaxColumns != 2 {
		t.Fatalf("maxColumns = %d, want 2", layout.MaxColumns)
	}
	if layout.Boxes[1].Column != layout.Boxes[2].Column {
		t.Fatalf("back-to-back lessons should share column 0")
	}
	if layout.Boxes[3].Column == layout.Boxes[1].Column {
		t.Fatalf("the overlapping lesson must use its own column")
	}
}

func TestPackDaySpanWidensIntoFreeColumns(t *testing.T) {
	// Two parallel morning lessons force two columns; the lone afternoon
	// lesson can stretch across both.
	layout, _ := PackDay([]models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "09:00", "10:00"),
		lesson(3, "2025-05-01", "11:00", "12:00"),
	}, unitGeom)

	box := layout.Boxes[3]
	if box.Column != 0 || box.Span != 2 {
		t.Fatalf("afternoon lesson should span both columns, got %+v", box)
	}
	if box.Width != 210 { // 2*100 + 1*10
		t.Fatalf("spanned width = %v, want 210", box.Width)
	}
	if layout.TotalWidth != 220 { // 2*5 + 2*100 + 10
		t.Fatalf("totalWidth = %v, want 220", layout.TotalWidth)
	}
}

func TestPackDayDeterministicAcrossInputOrder(t *testing.T) {
	lessons := []models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "09:00", "11:00"),
		lesson(3, "2025-05-01", "09:00", "10:00"),
		lesson(4, "2025-05-01", "10:30", "11:30"),
	}

	first, _ := PackDay(lessons, unitGeom)

	reversed := make([]models.Lesson, len(lessons))
	for i, l := range lessons {
		reversed[len(lessons)-1-i] = l
	}
	second, _ := PackDay(reversed, unitGeom)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("layout depends on input order:\n%+v\n%+v", first, second)
	}
}

func TestPackDayColumnsNeverOverlap(t *testing.T) {
	lessons := []models.Lesson{
		lesson(1, "2025-05-01", "08:00", "09:30"),
		lesson(2, "2025-05-01", "08:30", "10:00"),
		lesson(3, "2025-05-01", "09:00", "09:45"),
		lesson(4, "2025-05-01", "09:30", "11:00"),
		lesson(5, "2025-05-01", "10:00", "10:30"),
		lesson(6, "2025-05-01", "12:00", "13:00"),
	}

	layout, skipped := PackDay(lessons, unitGeom)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}

	mins := func(s string) int {
		v, err := ParseClock(s)
		if err != nil {
			t.Fatalf("bad clock in fixture: %v", err)
		}
		return v
	}

	for i, a := range lessons {
		for _, b := range lessons[i+1:] {
			if layout.Boxes[a.ID].Column != layout.Boxes[b.ID].Column {
				continue
			}
			if mins(a.StartTime) < mins(b.EndTime) && mins(b.StartTime) < mins(a.EndTime) {
				t.Fatalf("lessons %d and %d overlap in column %d", a.ID, b.ID, layout.Boxes[a.ID].Column)
			}
		}
	}

	// 08:30-09:30 has three simultaneous lessons; that is the ceiling.
	if layout.MaxColumns != 3 {
		t.Fatalf("maxColumns = %d, want 3", layout.MaxColumns)
	}
}

func TestPackDaySkipsMalformedLessons(t *testing.T) {
	layout, skipped := PackDay([]models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "nope", "10:00"),
		lesson(3, "2025-05-01", "11:00", "10:00"),
	}, unitGeom)

	if len(layout.Boxes) != 1 {
		t.Fatalf("expected only the valid lesson placed, got %d", len(layout.Boxes))
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %d", len(skipped))
	}
}

func TestPackWeekGroupsByDate(t *testing.T) {
	days, skipped := PackWeek([]models.Lesson{
		lesson(1, "2025-05-01", "09:00", "10:00"),
		lesson(2, "2025-05-01", "09:30", "10:30"),
		lesson(3, "2025-05-02", "09:00", "10:00"),
	}, unitGeom)

	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days["2025-05-01"].MaxColumns != 2 {
		t.Fatalf("first day maxColumns = %d, want 2", days["2025-05-01"].MaxColumns)
	}
	if days["2025-05-02"].MaxColumns != 1 {
		t.Fatalf("second day maxColumns = %d, want 1", days["2025-05-02"].MaxColumns)
	}
}
