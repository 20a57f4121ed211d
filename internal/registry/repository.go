package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrHospitalNotFound  = errors.New("hospital not found")
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrPregnancyNotFound = errors.New("pregnancy not found")
)

// Repository contains the master data lookups needed by the scheduling service.
type Repository interface {
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetHospitalByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*Staff, error)

	// IsPatientRegistered reports whether the patient is registered at the hospital.
	IsPatientRegistered(ctx context.Context, patientID, hospitalID uuid.UUID) (bool, error)

	GetActivePregnancy(ctx context.Context, patientID uuid.UUID) (*Pregnancy, error)
}
