package repositories

import (
	"database/sql"
	"errors"

	intconfig "driveschool/internal/config"
	"driveschool/internal/domain"
	"driveschool/internal/domain/models"
)

type LessonRepository struct {
	DB *sql.DB
}

func (r LessonRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const lessonColumns = `
	id,
	COALESCE(driver_id,0),
	COALESCE(lesson_date,''),
	COALESCE(start_time,''),
	COALESCE(end_time,''),
	created_at`

func scanLessons(rows *sql.Rows) ([]models.Lesson, error) {
	out := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.DriverID, &l.Date, &l.StartTime, &l.EndTime, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r LessonRepository) GetByID(id int64) (models.Lesson, error) {
	if id <= 0 {
		return models.Lesson{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	var l models.Lesson
	err := r.db().QueryRow(`
		SELECT `+lessonColumns+`
		FROM lessons
		WHERE id=? LIMIT 1`, id).
		Scan(&l.ID, &l.DriverID, &l.Date, &l.StartTime, &l.EndTime, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lesson{}, domain.NotFoundError{Resource: "lesson"}
		}
		return models.Lesson{}, err
	}
	return l, nil
}

// ListByDriverRange returns a driver's lessons with lesson_date in
// [from, to], both inclusive "YYYY-MM-DD". Ordering is left to the
// accumulator, which sorts with the id tie-break anyway.
func (r LessonRepository) ListByDriverRange(driverID int64, from, to string) ([]models.Lesson, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}

	rows, err := r.db().Query(`
		SELECT `+lessonColumns+`
		FROM lessons
		WHERE driver_id=? AND lesson_date>=? AND lesson_date<=?
		ORDER BY lesson_date ASC, start_time ASC, id ASC`,
		driverID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLessons(rows)
}

// ListByDriverBefore returns lessons strictly before the window start, used
// to seed the baseline hours.
func (r LessonRepository) ListByDriverBefore(driverID int64, before string) ([]models.Lesson, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}

	rows, err := r.db().Query(`
		SELECT `+lessonColumns+`
		FROM lessons
		WHERE driver_id=? AND lesson_date<?
		ORDER BY lesson_date ASC, start_time ASC, id ASC`,
		driverID, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLessons(rows)
}

// ListByDate returns every lesson on one rendering day, all drivers.
func (r LessonRepository) ListByDate(date string) ([]models.Lesson, error) {
	rows, err := r.db().Query(`
		SELECT `+lessonColumns+`
		FROM lessons
		WHERE lesson_date=?
		ORDER BY start_time ASC, id ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLessons(rows)
}

// ListByRange returns every lesson in [from, to] inclusive, all drivers.
func (r LessonRepository) ListByRange(from, to string) ([]models.Lesson, error) {
	rows, err := r.db().Query(`
		SELECT `+lessonColumns+`
		FROM lessons
		WHERE lesson_date>=? AND lesson_date<=?
		ORDER BY lesson_date ASC, start_time ASC, id ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLessons(rows)
}

func (r LessonRepository) Create(l models.Lesson) (int64, error) {
	if l.DriverID <= 0 {
		return 0, domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`
		INSERT INTO lessons (driver_id, lesson_date, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		l.DriverID, l.Date, l.StartTime, l.EndTime)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r LessonRepository) Update(l models.Lesson) error {
	if l.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`
		UPDATE lessons
		SET driver_id=?, lesson_date=?, start_time=?, end_time=?
		WHERE id=?`,
		l.DriverID, l.Date, l.StartTime, l.EndTime, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "lesson"}
	}
	return nil
}

func (r LessonRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	_, err := r.db().Exec(`DELETE FROM lessons WHERE id=?`, id)
	return err
}
