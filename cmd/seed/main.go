package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"internhub/internal/config"
	"internhub/internal/db"
	"internhub/internal/model"
	"internhub/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Internship{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	internshipRepo := repository.NewInternshipRepository(gormDB)

	admin, err := seedUser(ctx, userRepo, &model.User{
		Username:   "admin",
		Email:      cfg.SeedAdminEmail,
		FirstName:  "Site",
		LastName:   "Admin",
		Role:       model.RoleAdmin,
		IsApproved: true,
		Active:     true,
		Profile:    &model.Profile{},
	}, cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	supervisors := []struct {
		user     *model.User
		password string
	}{
		{
			user: &model.User{
				Username:   "srahman",
				Email:      "s.rahman@internhub.local",
				FirstName:  "Sadia",
				LastName:   "Rahman",
				Role:       model.RoleSupervisor,
				IsApproved: true,
				Active:     true,
				Profile: &model.Profile{
					Department: "Engineering",
					Position:   "Engineering Manager",
				},
			},
			password: "supervisor2024",
		},
		{
			user: &model.User{
				Username:   "jokafor",
				Email:      "j.okafor@internhub.local",
				FirstName:  "James",
				LastName:   "Okafor",
				Role:       model.RoleSupervisor,
				IsApproved: true,
				Active:     true,
				Profile: &model.Profile{
					Department: "Data",
					Position:   "Analytics Lead",
				},
			},
			password: "supervisor2024",
		},
	}

	seededSupervisors := make([]*model.User, 0, len(supervisors))
	for _, s := range supervisors {
		seeded, err := seedUser(ctx, userRepo, s.user, s.password)
		if err != nil {
			log.Fatalf("Failed to seed supervisor %s: %v", s.user.Email, err)
		}
		seededSupervisors = append(seededSupervisors, seeded)
	}

	created, skipped, err := seedInternships(ctx, internshipRepo, admin, seededSupervisors)
	if err != nil {
		log.Fatalf("Failed to seed internships: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Admin: %s", admin.Email)
	log.Printf("  - Supervisors: %d", len(seededSupervisors))
	log.Printf("  - Internships created: %d (skipped %d existing)", created, skipped)
}

// seedUser creates the user unless one with the same email already exists.
func seedUser(ctx context.Context, repo repository.UserRepository, user *model.User, password string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, user.Email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("error checking user %s: %w", user.Email, err)
	}
	if existing != nil {
		log.Printf("User %s already exists, skipping", user.Email)
		return existing, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password for %s: %w", user.Email, err)
	}
	user.PasswordHash = string(hashed)

	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user %s: %w", user.Email, err)
	}
	log.Printf("Created user %s (%s)", user.Email, user.Role)
	return user, nil
}

// seedInternships creates a small catalog of open postings assigned round-robin
// to the seeded supervisors.
func seedInternships(
	ctx context.Context,
	repo repository.InternshipRepository,
	admin *model.User,
	supervisors []*model.User,
) (created int, skipped int, err error) {
	now := time.Now()
	stipend := decimal.NewFromInt(800)
	salary := decimal.NewFromInt(2500)

	postings := []model.Internship{
		{
			Title:               "Backend Engineering Intern",
			Description:         "Work on API services and data pipelines with the engineering team.",
			Requirements:        "Familiarity with Go or a similar backend language.",
			Responsibilities:    "Implement features, write tests, participate in code review.",
			Department:          "Engineering",
			Location:            "Remote",
			Type:                model.InternshipTypePaid,
			Duration:            model.DurationMedium,
			SalaryAmount:        &salary,
			ApplicationDeadline: now.AddDate(0, 1, 0),
			StartDate:           now.AddDate(0, 2, 0),
			EndDate:             now.AddDate(0, 8, 0),
			MaxApplicants:       50,
			IsActive:            true,
			IsFeatured:          true,
		},
		{
			Title:               "Data Analytics Intern",
			Description:         "Support the data team with reporting and dashboard work.",
			Requirements:        "SQL and basic statistics.",
			Responsibilities:    "Build reports, clean datasets, present findings.",
			Department:          "Data",
			Location:            "On-site",
			Type:                model.InternshipTypeStipend,
			Duration:            model.DurationShort,
			SalaryAmount:        &stipend,
			ApplicationDeadline: now.AddDate(0, 1, 15),
			StartDate:           now.AddDate(0, 2, 0),
			EndDate:             now.AddDate(0, 5, 0),
			MaxApplicants:       30,
			IsActive:            true,
		},
		{
			Title:               "Community Outreach Intern",
			Description:         "Help organize outreach programs and partner events.",
			Department:          "Operations",
			Location:            "Hybrid",
			Type:                model.InternshipTypeUnpaid,
			Duration:            model.DurationShort,
			ApplicationDeadline: now.AddDate(0, 0, 21),
			StartDate:           now.AddDate(0, 1, 0),
			EndDate:             now.AddDate(0, 4, 0),
			MaxApplicants:       20,
			IsActive:            true,
		},
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("error listing internships: %w", err)
	}
	existingTitles := make(map[string]bool, len(existing))
	for _, internship := range existing {
		existingTitles[internship.Title] = true
	}

	for i := range postings {
		if existingTitles[postings[i].Title] {
			skipped++
			continue
		}
		postings[i].CreatedByID = admin.ID
		if len(supervisors) > 0 {
			postings[i].SupervisorID = &supervisors[i%len(supervisors)].ID
		}
		if err := repo.Create(ctx, &postings[i]); err != nil {
			return created, skipped, fmt.Errorf("error creating internship %q: %w", postings[i].Title, err)
		}
		created++
	}
	return created, skipped, nil
}
