package registry

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	UserID    *uuid.UUID // portal identity used for notifications, nil when the patient has no account
	BirthDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Hospital struct {
	ID        uuid.UUID
	Name      string
	City      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Staff struct {
	ID         uuid.UUID
	HospitalID uuid.UUID
	Name       string
	Role       *string
	Department *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pregnancy is the obstetric record a schedule is computed from.
type Pregnancy struct {
	ID                  uuid.UUID
	PatientID           uuid.UUID
	LastMenstrualPeriod time.Time
	EstimatedDueDate    *time.Time // explicit override, nil means derive from LMP
	HighRisk            bool
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
