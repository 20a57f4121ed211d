package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careops/maternity-scheduling/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	seedCtx := context.Background()

	hospitals, err := seedHospitals(seedCtx, pool, 5)
	if err != nil {
		log.Fatalf("seed hospitals: %v", err)
	}
	if err := seedStaff(seedCtx, pool, hospitals, 60); err != nil {
		log.Fatalf("seed staff: %v", err)
	}
	patients, err := seedPatients(seedCtx, pool, hospitals, 500)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedPregnancies(seedCtx, pool, hospitals, patients); err != nil {
		log.Fatalf("seed pregnancies: %v", err)
	}

	log.Println("seed complete")
}

func seedHospitals(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d hospitals", count)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.City() + " General Hospital"
		city := gofakeit.City()

		_, err := pool.Exec(ctx, `
			INSERT INTO hospitals (id, name, city, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
		`, id, name, city)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedStaff(ctx context.Context, pool *pgxpool.Pool, hospitals []uuid.UUID, count int) error {
	log.Printf("seeding %d staff members", count)

	roles := []string{"Obstetrician", "Midwife", "Nurse", "Sonographer", "General Practitioner"}
	departments := []string{"Obstetrics", "Maternity Ward", "Ultrasound", "Outpatient"}

	for i := 0; i < count; i++ {
		hospitalID := hospitals[i%len(hospitals)]
		role := roles[gofakeit.Number(0, len(roles)-1)]
		department := departments[gofakeit.Number(0, len(departments)-1)]

		_, err := pool.Exec(ctx, `
			INSERT INTO staff (id, hospital_id, name, role, department, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, uuid.New(), hospitalID, gofakeit.Name(), role, department)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, hospitals []uuid.UUID, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		email := gofakeit.Email()
		phone := gofakeit.Phone()
		birthDate := gofakeit.DateRange(
			time.Now().AddDate(-45, 0, 0),
			time.Now().AddDate(-18, 0, 0),
		)

		// Roughly one in ten patients has no portal account
		var userID *uuid.UUID
		if gofakeit.Number(0, 9) > 0 {
			u := uuid.New()
			userID = &u
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO patients (id, name, email, phone, user_id, birth_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, id, gofakeit.Name(), email, phone, userID, birthDate)
		if err != nil {
			return nil, err
		}

		hospitalID := hospitals[i%len(hospitals)]
		_, err = pool.Exec(ctx, `
			INSERT INTO patient_hospitals (patient_id, hospital_id, registered_at)
			VALUES ($1, $2, now())
		`, id, hospitalID)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}
	return ids, nil
}

func seedPregnancies(ctx context.Context, pool *pgxpool.Pool, hospitals []uuid.UUID, patients []uuid.UUID) error {
	log.Printf("seeding pregnancies and appointments for %d patients", len(patients)/2)

	for i, patientID := range patients {
		if i%2 != 0 {
			continue
		}

		// LMP somewhere inside the gestation window
		weeksAlong := gofakeit.Number(5, 38)
		lmp := time.Now().AddDate(0, 0, -weeksAlong*7)
		highRisk := gofakeit.Number(0, 4) == 0

		_, err := pool.Exec(ctx, `
			INSERT INTO pregnancies (id, patient_id, last_menstrual_period, estimated_due_date, high_risk, status, created_at, updated_at)
			VALUES ($1, $2, $3, NULL, $4, 'active', now(), now())
		`, uuid.New(), patientID, lmp, highRisk)
		if err != nil {
			return err
		}

		// A booked check-up a couple of weeks out for some of them
		if gofakeit.Number(0, 2) == 0 {
			date := time.Now().AddDate(0, 0, gofakeit.Number(3, 21))
			start := time.Date(date.Year(), date.Month(), date.Day(), gofakeit.Number(8, 15), 0, 0, 0, time.UTC)
			end := start.Add(15 * time.Minute)
			hospitalID := hospitals[i%len(hospitals)]

			_, err := pool.Exec(ctx, `
				INSERT INTO appointments (id, hospital_id, patient_id, staff_id, department, date, start_time, end_time, status, reason, created_at, updated_at)
				VALUES ($1, $2, $3, NULL, 'Obstetrics', $4, $5, $6, 'scheduled', 'Prenatal check-up', now(), now())
			`, uuid.New(), hospitalID, patientID, start.Truncate(24*time.Hour), start, end)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
