package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surgiplan/backend/internal/adapters/database"
	"github.com/surgiplan/backend/internal/application/services"
	"github.com/surgiplan/backend/internal/domain/entities"
	"github.com/surgiplan/backend/internal/infrastructure/clients/postgres"
	"github.com/surgiplan/backend/internal/infrastructure/observability"
	"github.com/surgiplan/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS doctors (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS hospitals (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS insurance_plans (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS surgeries (
	id UUID PRIMARY KEY,
	patient_name TEXT NOT NULL,
	main_surgeon_id TEXT NOT NULL,
	participating_ids TEXT[] NOT NULL DEFAULT '{}',
	scheduled_at TIMESTAMPTZ NOT NULL,
	hospital_id TEXT,
	insurance_plan_id TEXT,
	authorization_status TEXT NOT NULL,
	status TEXT NOT NULL,
	total_value NUMERIC NOT NULL DEFAULT 0,
	materials JSONB NOT NULL DEFAULT '[]',
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_surgeries_scheduled_at ON surgeries (scheduled_at);

CREATE TABLE IF NOT EXISTS user_profiles (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	doctor_id TEXT,
	is_admin BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("surgiplan-seed", cfg.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				surgeries,
				doctors,
				hospitals,
				insurance_plans,
				user_profiles
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	doctorRepo := database.NewDoctorAdapter(pgClient)
	hospitalRepo := database.NewHospitalAdapter(pgClient)
	planRepo := database.NewInsurancePlanAdapter(pgClient)
	surgeryRepo := database.NewSurgeryAdapter(pgClient)
	profileRepo := database.NewUserProfileAdapter(pgClient)

	// 1. Seed doctors
	doctors := []*entities.Doctor{
		{Name: "Dr. Ana Ribeiro", Color: "#1abc9c"},
		{Name: "Dr. Bruno Tavares", Color: "#3498db"},
		{Name: "Dr. Camila Nunes", Color: "#e67e22"},
	}
	for _, d := range doctors {
		if err := doctorRepo.Save(ctx, d); err != nil {
			log.Fatal().Err(err).Str("doctor", d.Name).Msg("failed to seed doctor")
		}
	}

	// 2. Seed hospitals
	hospitals := []*entities.Hospital{
		{Name: "Hospital Santa Casa"},
		{Name: "Hospital São Lucas"},
		{Name: "Hospital Albert Einstein"},
	}
	for _, h := range hospitals {
		if err := hospitalRepo.Save(ctx, h); err != nil {
			log.Fatal().Err(err).Str("hospital", h.Name).Msg("failed to seed hospital")
		}
	}

	// 3. Seed insurance plans
	plans := []*entities.InsurancePlan{
		{Name: "Unimed"},
		{Name: "Bradesco Saúde"},
		{Name: "SulAmérica"},
	}
	for _, p := range plans {
		if err := planRepo.Save(ctx, p); err != nil {
			log.Fatal().Err(err).Str("plan", p.Name).Msg("failed to seed insurance plan")
		}
	}

	// 4. Seed surgeries spread around today
	now := time.Now()
	at := func(days, hour int) time.Time {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
	}
	surgeries := []*entities.Surgery{
		{
			PatientName:         "Maria Souza",
			MainSurgeonID:       doctors[0].ID,
			ScheduledAt:         at(0, 9),
			HospitalID:          hospitals[0].ID,
			InsurancePlanID:     plans[0].ID,
			AuthorizationStatus: entities.AuthorizationApproved,
			Status:              entities.SurgeryScheduled,
			TotalValue:          4500,
			Materials:           []entities.Material{{Name: "Prótese de quadril", Quantity: 1}},
		},
		{
			PatientName:         "João Pereira",
			MainSurgeonID:       doctors[1].ID,
			ParticipatingIDs:    []string{doctors[0].ID},
			ScheduledAt:         at(2, 14),
			HospitalID:          hospitals[1].ID,
			InsurancePlanID:     plans[1].ID,
			AuthorizationStatus: entities.AuthorizationPending,
			Status:              entities.SurgeryScheduled,
			TotalValue:          2800,
		},
		{
			PatientName:         "Carla Mendes",
			MainSurgeonID:       doctors[2].ID,
			ScheduledAt:         at(-7, 11),
			HospitalID:          hospitals[0].ID,
			InsurancePlanID:     plans[2].ID,
			AuthorizationStatus: entities.AuthorizationApproved,
			Status:              entities.SurgeryPerformed,
			TotalValue:          6200,
			Materials:           []entities.Material{{Name: "Parafuso de titânio", Quantity: 4}, {Name: "Placa bloqueada", Quantity: 1}},
		},
	}
	for _, s := range surgeries {
		if err := surgeryRepo.Save(ctx, s); err != nil {
			log.Fatal().Err(err).Str("patient", s.PatientName).Msg("failed to seed surgery")
		}
	}

	// 5. Seed the default login
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "surgiplan"
	}
	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}
	if err := profileRepo.Save(ctx, &entities.UserProfile{
		Email:        "admin@surgiplan.com",
		PasswordHash: hash,
		DoctorID:     doctors[0].ID,
		IsAdmin:      true,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin profile")
	}

	log.Info().
		Int("doctors", len(doctors)).
		Int("hospitals", len(hospitals)).
		Int("plans", len(plans)).
		Int("surgeries", len(surgeries)).
		Msg("seed complete")
}
