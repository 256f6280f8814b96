package schedule

import (
	"sort"

	"driveschool/internal/domain/models"
)

// Geometry holds the rendering parameters for converting columns to pixels.
type Geometry struct {
	UnitWidth float64 `json:"unitWidth"`
	Gap       float64 `json:"gap"`
	Padding   float64 `json:"padding"`
}

// DefaultGeometry matches the calendar views of the admin frontend.
var DefaultGeometry = Geometry{UnitWidth: 120, Gap: 8, Padding: 10}

// Box is the visual placement of one lesson within a rendering day.
type Box struct {
	Column int     `json:"column"`
	Span   int     `json:"columnsSpanned"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
}

// DayLayout maps each lesson of one day to its box. Recomputed on every
// render, never persisted.
type DayLayout struct {
	Boxes      map[int64]Box `json:"boxes"`
	MaxColumns int           `json:"maxColumns"`
	TotalWidth float64       `json:"totalWidth"`
}

type interval struct {
	id    int64
	start int
	end   int
}

func overlaps(a, b interval) bool {
	return a.start < b.end && b.start < a.end
}

// PackDay assigns the lessons of a single rendering day to non-colliding
// visual columns using greedy interval coloring, then widens each box through
// free neighbouring columns. The column count always equals the maximum
// number of lessons overlapping at any instant.
//
// Sort order is start asc, duration desc, id asc; the id tie-break keeps
// layouts reproducible regardless of input order. Malformed lessons are
// excluded and reported, not fatal.
func PackDay(lessons []models.Lesson, g Geometry) (DayLayout, []LessonError) {
	layout := DayLayout{Boxes: map[int64]Box{}}
	var skipped []LessonError

	ivs := make([]interval, 0, len(lessons))
	for _, l := range lessons {
		s, err := ParseClock(l.StartTime)
		if err != nil {
			skipped = append(skipped, newLessonError(l.ID, err))
			continue
		}
		e, err := ParseClock(l.EndTime)
		if err != nil {
			skipped = append(skipped, newLessonError(l.ID, err))
			continue
		}
		if e < s {
			skipped = append(skipped, newLessonError(l.ID, errIntervalFor(l.StartTime, l.EndTime)))
			continue
		}
		ivs = append(ivs, interval{id: l.ID, start: s, end: e})
	}

	if len(ivs) == 0 {
		return layout, skipped
	}

	sort.Slice(ivs, func(i, j int) bool {
		a, b := ivs[i], ivs[j]
		if a.start != b.start {
			return a.start < b.start
		}
		da, db := a.end-a.start, b.end-b.start
		if da != db {
			return da > db
		}
		return a.id < b.id
	})

	// First-fit column placement.
	columns := [][]interval{}
	colOf := make(map[int64]int, len(ivs))
	for _, iv := range ivs {
		placed := false
		for c := range columns {
			if !conflicts(columns[c], iv) {
				columns[c] = append(columns[c], iv)
				colOf[iv.id] = c
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []interval{iv})
			colOf[iv.id] = len(columns) - 1
		}
	}

	maxCols := len(columns)

	for _, iv := range ivs {
		col := colOf[iv.id]

		// Widen rightward through consecutive conflict-free columns.
		span := 1
		for c := col + 1; c < maxCols; c++ {
			if conflicts(columns[c], iv) {
				break
			}
			span++
		}

		layout.Boxes[iv.id] = Box{
			Column: col,
			Span:   span,
			Left:   float64(col)*(g.UnitWidth+g.Gap) + g.Padding,
			Width:  float64(span)*g.UnitWidth + float64(span-1)*g.Gap,
		}
	}

	layout.MaxColumns = maxCols
	layout.TotalWidth = 2*g.Padding + float64(maxCols)*g.UnitWidth + float64(maxCols-1)*g.Gap
	return layout, skipped
}

// PackWeek groups lessons by date and packs each day independently, keyed by
// "YYYY-MM-DD". One shared implementation serves both the day and week views.
func PackWeek(lessons []models.Lesson, g Geometry) (map[string]DayLayout, []LessonError) {
	byDate := map[string][]models.Lesson{}
	for _, l := range lessons {
		byDate[l.Date] = append(byDate[l.Date], l)
	}

	out := make(map[string]DayLayout, len(byDate))
	var skipped []LessonError
	for date, day := range byDate {
		layout, bad := PackDay(day, g)
		out[date] = layout
		skipped = append(skipped, bad...)
	}
	return out, skipped
}

func conflicts(col []interval, iv interval) bool {
	for _, other := range col {
		if overlaps(other, iv) {
			return true
		}
	}
	return false
}
