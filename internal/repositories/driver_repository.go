package repositories

import (
	"database/sql"
	"errors"

	intconfig "driveschool/internal/config"
	"driveschool/internal/domain"
	"driveschool/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches the driver snapshot used by the compliance evaluator.
func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	if id <= 0 {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	query := `
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(phone,''),
		       COALESCE(total_paid,0),
		       COALESCE(payment_type,'none')
		FROM drivers
		WHERE id=? LIMIT 1`

	var d models.Driver
	if err := r.db().QueryRow(query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.TotalPaid,
		&d.PaymentType,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Driver{}, domain.NotFoundError{Resource: "driver"}
		}
		return models.Driver{}, err
	}
	return d, nil
}

// List returns all drivers ordered by name.
func (r DriverRepository) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(phone,''),
		       COALESCE(total_paid,0),
		       COALESCE(payment_type,'none')
		FROM drivers
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.TotalPaid, &d.PaymentType); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListIDs returns every driver id, for batch recomputes.
func (r DriverRepository) ListIDs() ([]int64, error) {
	rows, err := r.db().Query(`SELECT id FROM drivers ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r DriverRepository) Create(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, phone, total_paid, payment_type)
		VALUES (?, ?, ?, ?)`,
		d.Name, d.Phone, d.TotalPaid, string(d.PaymentType))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(d models.Driver) error {
	if d.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`
		UPDATE drivers
		SET name=?, phone=?, total_paid=?, payment_type=?
		WHERE id=?`,
		d.Name, d.Phone, d.TotalPaid, string(d.PaymentType), d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func (r DriverRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	_, err := r.db().Exec(`DELETE FROM drivers WHERE id=?`, id)
	return err
}

// Installments returns the driver's ledger in ascending hours order; the
// evaluator depends on that ordering.
func (r DriverRepository) Installments(driverID int64) ([]models.Installment, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}

	rows, err := r.db().Query(`
		SELECT id, driver_id, hours, amount
		FROM driver_installments
		WHERE driver_id=?
		ORDER BY hours ASC, id ASC`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Installment{}
	for rows.Next() {
		var inst models.Installment
		if err := rows.Scan(&inst.ID, &inst.DriverID, &inst.Hours, &inst.Amount); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}

// ReplaceInstallments swaps the whole ledger in one transaction. Partial
// ledgers are never left behind.
func (r DriverRepository) ReplaceInstallments(driverID int64, installments []models.Installment) error {
	if driverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: "must be positive"}
	}
	for _, inst := range installments {
		if inst.Hours < 0 || inst.Amount < 0 {
			return domain.ValidationError{Field: "installments", Msg: "hours and amount must be non-negative"}
		}
	}

	tx, err := r.db().Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM driver_installments WHERE driver_id=?`, driverID); err != nil {
		return err
	}
	for _, inst := range installments {
		if _, err := tx.Exec(`
			INSERT INTO driver_installments (driver_id, hours, amount)
			VALUES (?, ?, ?)`,
			driverID, inst.Hours, inst.Amount); err != nil {
			return err
		}
	}

	return tx.Commit()
}
