package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var email, phone *string
	var userID *uuid.UUID
	var birthDate *time.Time

	err := row.Scan(
		&p.ID,
		&p.Name,
		&email,
		&phone,
		&userID,
		&birthDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.Email = email
	p.Phone = phone
	p.UserID = userID
	p.BirthDate = birthDate
	return &p, nil
}

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	var city *string

	err := row.Scan(
		&h.ID,
		&h.Name,
		&city,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	h.City = city
	return &h, nil
}

func scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	var role, department *string

	err := row.Scan(
		&s.ID,
		&s.HospitalID,
		&s.Name,
		&role,
		&department,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	s.Role = role
	s.Department = department
	return &s, nil
}

func scanPregnancy(row pgx.Row) (*Pregnancy, error) {
	var p Pregnancy
	var dueDate *time.Time

	err := row.Scan(
		&p.ID,
		&p.PatientID,
		&p.LastMenstrualPeriod,
		&dueDate,
		&p.HighRisk,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPregnancyNotFound
		}
		return nil, err
	}

	p.EstimatedDueDate = dueDate
	return &p, nil
}

// Interface methods

func (r *PgRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, user_id, birth_date, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) GetHospitalByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, city, created_at, updated_at
		FROM hospitals
		WHERE id = $1
	`, id)
	return scanHospital(row)
}

func (r *PgRepository) GetStaffByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, hospital_id, name, role, department, created_at, updated_at
		FROM staff
		WHERE id = $1
	`, id)
	return scanStaff(row)
}

func (r *PgRepository) IsPatientRegistered(ctx context.Context, patientID, hospitalID uuid.UUID) (bool, error) {
	var registered bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM patient_hospitals
			WHERE patient_id = $1 AND hospital_id = $2
		)
	`, patientID, hospitalID).Scan(&registered)
	if err != nil {
		return false, err
	}
	return registered, nil
}

func (r *PgRepository) GetActivePregnancy(ctx context.Context, patientID uuid.UUID) (*Pregnancy, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, last_menstrual_period, estimated_due_date, high_risk, status, created_at, updated_at
		FROM pregnancies
		WHERE patient_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`, patientID)
	return scanPregnancy(row)
}
