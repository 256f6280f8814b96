package services

import (
	"driveschool/internal/domain"
	"driveschool/internal/domain/models"
	"driveschool/internal/repositories"
	"driveschool/internal/schedule"
	"driveschool/internal/utils"
)

// LayoutService feeds calendar windows through the shared interval packer.
type LayoutService struct {
	LessonRepo repositories.LessonRepository
	RequestID  string

	FetchDay   func(date string) ([]models.Lesson, error)
	FetchRange func(from, to string) ([]models.Lesson, error)
}

// DayResult is the rendering geometry for one day plus the lessons excluded
// from it.
type DayResult struct {
	Date    string                 `json:"date"`
	Layout  schedule.DayLayout     `json:"layout"`
	Skipped []schedule.LessonError `json:"skipped,omitempty"`
}

// WeekResult maps the seven days starting at Start to their layouts.
type WeekResult struct {
	Start   string                        `json:"start"`
	Days    map[string]schedule.DayLayout `json:"days"`
	Skipped []schedule.LessonError        `json:"skipped,omitempty"`
}

func (s LayoutService) loadDay(date string) ([]models.Lesson, error) {
	if s.FetchDay != nil {
		return s.FetchDay(date)
	}
	return s.LessonRepo.ListByDate(date)
}

func (s LayoutService) loadRange(from, to string) ([]models.Lesson, error) {
	if s.FetchRange != nil {
		return s.FetchRange(from, to)
	}
	return s.LessonRepo.ListByRange(from, to)
}

// Day packs one rendering day.
func (s LayoutService) Day(date string, g schedule.Geometry) (DayResult, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return DayResult{}, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	lessons, err := s.loadDay(date)
	if err != nil {
		return DayResult{}, err
	}

	layout, skipped := schedule.PackDay(lessons, g)
	utils.LogEvent(s.RequestID, "layout", "day", "date="+date)
	return DayResult{Date: date, Layout: layout, Skipped: skipped}, nil
}

// Week packs the seven days starting at start, each day independently.
func (s LayoutService) Week(start string, g schedule.Geometry) (WeekResult, error) {
	end, err := utils.AddDays(start, 6)
	if err != nil {
		return WeekResult{}, domain.ValidationError{Field: "start", Msg: "expected YYYY-MM-DD", Err: err}
	}

	lessons, err := s.loadRange(start, end)
	if err != nil {
		return WeekResult{}, err
	}

	days, skipped := schedule.PackWeek(lessons, g)
	utils.LogEvent(s.RequestID, "layout", "week", "start="+start)
	return WeekResult{Start: start, Days: days, Skipped: skipped}, nil
}
