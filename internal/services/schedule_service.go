package services

import (
	"sort"
	"strconv"
	"sync"

	"driveschool/internal/domain/models"
	"driveschool/internal/repositories"
	"driveschool/internal/schedule"
	"driveschool/internal/utils"
)

// ScheduleService runs the accumulate/evaluate pipeline for drivers. Every
// call recomputes from scratch; the pipeline keeps no state between calls so
// evaluations for different drivers can run concurrently.
type ScheduleService struct {
	DriverRepo repositories.DriverRepository
	LessonRepo repositories.LessonRepository
	RequestID  string

	// Test seams, same pattern as the repositories' DB override.
	FetchDriver    func(id int64) (models.Driver, []models.Installment, error)
	FetchWindow    func(driverID int64, from, to string) ([]models.Lesson, error)
	FetchHistory   func(driverID int64, before string) ([]models.Lesson, error)
	FetchDriverIDs func() ([]int64, error)
}

func (s ScheduleService) loadDriver(id int64) (models.Driver, []models.Installment, error) {
	if s.FetchDriver != nil {
		return s.FetchDriver(id)
	}
	d, err := s.DriverRepo.GetByID(id)
	if err != nil {
		return models.Driver{}, nil, err
	}
	installments, err := s.DriverRepo.Installments(id)
	if err != nil {
		return models.Driver{}, nil, err
	}
	return d, installments, nil
}

func (s ScheduleService) loadWindow(driverID int64, from, to string) ([]models.Lesson, error) {
	if s.FetchWindow != nil {
		return s.FetchWindow(driverID, from, to)
	}
	return s.LessonRepo.ListByDriverRange(driverID, from, to)
}

func (s ScheduleService) loadHistory(driverID int64, before string) ([]models.Lesson, error) {
	if s.FetchHistory != nil {
		return s.FetchHistory(driverID, before)
	}
	return s.LessonRepo.ListByDriverBefore(driverID, before)
}

// EvaluateDriver fetches the driver snapshot, the pre-window history and the
// window lessons, and flags each window lesson as payment-due or not. History
// is always fetched here so the baseline is never silently zero.
func (s ScheduleService) EvaluateDriver(driverID int64, from, to string) (schedule.Evaluation, error) {
	utils.LogEvent(s.RequestID, "schedule", "evaluate", "driver_id="+strconv.FormatInt(driverID, 10))

	driver, installments, err := s.loadDriver(driverID)
	if err != nil {
		return schedule.Evaluation{}, err
	}

	history, err := s.loadHistory(driverID, from)
	if err != nil {
		return schedule.Evaluation{}, err
	}
	window, err := s.loadWindow(driverID, from, to)
	if err != nil {
		return schedule.Evaluation{}, err
	}

	acc := schedule.Accumulate(history, window)
	return schedule.Evaluate(driver, installments, acc), nil
}

// DriverResult pairs one driver's evaluation with its fetch error, if any.
type DriverResult struct {
	DriverID   int64                `json:"driverId"`
	Evaluation *schedule.Evaluation `json:"evaluation,omitempty"`
	Err        string               `json:"error,omitempty"`
}

// EvaluateAll recomputes compliance for every driver, one task per driver on
// a bounded worker pool. Drivers are independent, so only the result slice
// needs the mutex; order of results is fixed afterwards for determinism.
func (s ScheduleService) EvaluateAll(from, to string, workers int) ([]DriverResult, error) {
	if workers <= 0 {
		workers = 4
	}

	var ids []int64
	var err error
	if s.FetchDriverIDs != nil {
		ids, err = s.FetchDriverIDs()
	} else {
		ids, err = s.DriverRepo.ListIDs()
	}
	if err != nil {
		return nil, err
	}

	utils.LogEvent(s.RequestID, "schedule", "evaluate_all",
		"drivers="+strconv.Itoa(len(ids))+" workers="+strconv.Itoa(workers))

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]DriverResult, 0, len(ids))
		sem     = make(chan struct{}, workers)
	)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(driverID int64) {
			defer wg.Done()
			defer func() { <-sem }()

			res := DriverResult{DriverID: driverID}
			ev, err := s.EvaluateDriver(driverID, from, to)
			if err != nil {
				res.Err = err.Error()
			} else {
				res.Evaluation = &ev
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].DriverID < results[j].DriverID })
	return results, nil
}
