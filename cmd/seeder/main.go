package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/repository"
	"github.com/campusworks/results-api/pkg/config"
	"github.com/campusworks/results-api/pkg/database"
)

const (
	InstitutionID = "inst-001"

	HeadLoginID    = "head.admin"
	AdminLoginID   = "registry"
	TeacherLoginID = "j.flores"

	CommonSecret = "changeme123"

	CurrentTerm  = "Term 2"
	PreviousTerm = "Term 1"
)

// StudentSeed keeps the student fixtures easy to scan.
type StudentSeed struct {
	ID                 string
	RegistrationNumber string
	Name               string
	Email              string
	CohortLabel        string
	DepartmentLabel    string
	DateOfBirth        string
}

func main() {
	log.Println("Starting database seeder...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(client) //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}
	log.Println("Database cleared.")

	now := time.Now().UTC()

	institutions := repository.NewInstitutionRepository(db)
	students := repository.NewStudentRepository(db)
	grades := repository.NewGradeRepository(db)
	subjects := repository.NewSubjectRepository(db)

	if err := institutions.Create(ctx, seedInstitution(now)); err != nil {
		log.Fatalf("Failed to seed institution: %v", err)
	}
	log.Println("Seeded institution directory.")

	studentSeeds := []StudentSeed{
		{"stu-001", "REG-2024-001", "Priya Raman", "priya.raman@example.edu", "Year I", "Computer Science", "2006-03-14"},
		{"stu-002", "REG-2024-002", "Daniel Okoye", "daniel.okoye@example.edu", "Year I", "Computer Science", "2005-11-02"},
		{"stu-003", "REG-2023-017", "Mei Tanaka", "mei.tanaka@example.edu", "Year II", "Mathematics", "2005-01-28"},
	}
	for _, seed := range studentSeeds {
		record := &models.StudentRecord{
			ID:                 seed.ID,
			RegistrationNumber: seed.RegistrationNumber,
			Name:               seed.Name,
			Email:              seed.Email,
			CohortLabel:        seed.CohortLabel,
			DepartmentLabel:    seed.DepartmentLabel,
			DateOfBirth:        seed.DateOfBirth,
			CreatedAt:          now,
		}
		if err := students.Create(ctx, record); err != nil {
			log.Fatalf("Failed to seed student %s: %v", seed.RegistrationNumber, err)
		}
	}
	log.Printf("Seeded %d students.", len(studentSeeds))

	if err := subjects.Append(ctx, &models.SubjectBatch{
		ID: "subj-batch-001",
		Subjects: []models.SubjectDefinition{
			{Name: "Algorithms", Code: "CS-201", CohortLabel: "Year I", TermLabel: CurrentTerm},
			{Name: "Databases", Code: "CS-202", CohortLabel: "Year I", TermLabel: CurrentTerm},
			{Name: "Linear Algebra", Code: "MA-210", CohortLabel: "Year II", TermLabel: CurrentTerm},
		},
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("Failed to seed subjects: %v", err)
	}
	log.Println("Seeded subject catalogue.")

	created := now.AddDate(0, -1, 0)
	gradeDocs := []*models.GradeDocument{
		{
			ID:          "grade-doc-001",
			StudentID:   "REG-2024-001",
			CohortLabel: "Year I",
			TermLabel:   CurrentTerm,
			Subjects: []models.GradeSubjectEntry{
				{Name: "Algorithms", Marks: 92, Grade: "O", Present: true},
				{Name: "Databases", Marks: 58, Grade: "B", Present: true},
			},
			CreatedAt: created,
		},
		{
			ID:          "grade-doc-002",
			StudentID:   "REG-2024-002",
			CohortLabel: "Year I",
			TermLabel:   CurrentTerm,
			Subjects: []models.GradeSubjectEntry{
				{Name: "Algorithms", Marks: 74, Grade: "A", Present: true},
				{Name: "Databases", Marks: 0, Grade: "UA", Present: false},
			},
			CreatedAt: created,
		},
		// Legacy singular document shape retained by older imports.
		{
			ID:          "grade-doc-legacy-003",
			StudentID:   "REG-2023-017",
			CohortLabel: "Year II",
			TermLabel:   PreviousTerm,
			Subject:     "Linear Algebra",
			Marks:       floatPtr(81),
			Grade:       "A+",
			Present:     true,
		},
	}
	for _, doc := range gradeDocs {
		if err := grades.Append(ctx, doc); err != nil {
			log.Fatalf("Failed to seed grade document %s: %v", doc.ID, err)
		}
	}
	log.Printf("Seeded %d grade documents.", len(gradeDocs))

	log.Println("Seeding complete.")
}

func seedInstitution(now time.Time) *models.Institution {
	return &models.Institution{
		ID:        InstitutionID,
		Name:      "Riverside Technical Institute",
		CreatedAt: now,
		Accounts: []models.Account{
			{
				ID:        "acct-head-001",
				LoginID:   HeadLoginID,
				Secret:    mustHash(CommonSecret),
				Role:      models.RoleHead,
				Status:    models.StatusActive,
				CreatedAt: now,
			},
			{
				ID:               "acct-admin-001",
				LoginID:          AdminLoginID,
				Secret:           mustHash(CommonSecret),
				Role:             models.RoleAdmin,
				Status:           models.StatusActive,
				CanManageResults: true,
				CreatedAt:        now,
			},
		},
		Departments: []models.Department{
			{
				ID:   "dept-cs-001",
				Name: "Computer Science",
				Code: "CS",
				Cohorts: map[models.CohortKey]models.Cohort{
					models.CohortFirst: {
						Accounts: []models.Account{
							{
								ID:               "acct-teacher-001",
								LoginID:          TeacherLoginID,
								Secret:           mustHash(CommonSecret),
								Role:             models.RoleTeacher,
								Status:           models.StatusActive,
								CanManageResults: true,
								CreatedAt:        now,
							},
						},
					},
					models.CohortSecond: {},
				},
			},
			{
				ID:   "dept-math-001",
				Name: "Mathematics",
				Code: "MA",
				Cohorts: map[models.CohortKey]models.Cohort{
					models.CohortFirst: {},
					models.CohortSecond: {
						Accounts: []models.Account{
							{
								ID:        "acct-teacher-002",
								LoginID:   "s.varga",
								Secret:    mustHash(CommonSecret),
								Role:      models.RoleTeacher,
								Status:    models.StatusInactive,
								CreatedAt: now,
							},
						},
					},
				},
			},
		},
	}
}

func mustHash(secret string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash secret: %v", err)
	}
	return string(hash)
}

func floatPtr(v float64) *float64 { return &v }
