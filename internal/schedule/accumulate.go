package schedule

import (
	"fmt"
	"sort"

	"driveschool/internal/domain/models"
)

// LessonError records a single lesson excluded from a computation. One bad
// record never aborts the rest of the driver's lessons.
type LessonError struct {
	LessonID int64  `json:"lessonId"`
	Err      error  `json:"-"`
	Reason   string `json:"reason"`
}

func (e LessonError) Error() string {
	return fmt.Sprintf("lesson %d: %v", e.LessonID, e.Err)
}

func (e LessonError) Unwrap() error { return e.Err }

func newLessonError(id int64, err error) LessonError {
	return LessonError{LessonID: id, Err: err, Reason: err.Error()}
}

// RunningLesson is a lesson with its derived duration and the cumulative
// hours the driver has driven once this lesson is over.
type RunningLesson struct {
	Lesson       models.Lesson
	Hours        float64
	RunningAfter float64
}

// Accumulation is the output of Accumulate: the baseline driven before the
// reporting window plus the running-hours sequence inside it.
type Accumulation struct {
	BaselineHours float64
	Lessons       []RunningLesson
	Skipped       []LessonError
}

// SortChronological orders lessons by (date, start time, id) ascending. The
// id tie-break makes the order strictly total, so repeated runs over the same
// data always produce the same sequence.
func SortChronological(lessons []models.Lesson) {
	sort.Slice(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
}

// Accumulate seeds a baseline from the history lessons (everything strictly
// before the reporting window) and computes the running-hours sequence for
// the window lessons. Callers that cannot supply history get a baseline of
// zero, which changes compliance results for long-running drivers; fetching
// history is the caller's responsibility.
func Accumulate(history, window []models.Lesson) Accumulation {
	acc := Accumulation{}

	for _, l := range history {
		h, err := LessonHours(l.StartTime, l.EndTime)
		if err != nil {
			acc.Skipped = append(acc.Skipped, newLessonError(l.ID, err))
			continue
		}
		acc.BaselineHours += h
	}

	ordered := make([]models.Lesson, len(window))
	copy(ordered, window)
	SortChronological(ordered)

	running := acc.BaselineHours
	for _, l := range ordered {
		h, err := LessonHours(l.StartTime, l.EndTime)
		if err != nil {
			acc.Skipped = append(acc.Skipped, newLessonError(l.ID, err))
			continue
		}
		running += h
		acc.Lessons = append(acc.Lessons, RunningLesson{
			Lesson:       l,
			Hours:        h,
			RunningAfter: running,
		})
	}

	return acc
}
