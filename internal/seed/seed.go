// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"vicharak/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password shared by all seeded users.
const SeedPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumVichars  int
	ShouldClean bool
}

// Seeder builds demo data and persists it to the database.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Run populates the database per the given options.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d vichars...", opts.NumUsers, opts.NumVichars)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	roles, err := s.EnsureBuiltinRoles()
	if err != nil {
		return fmt.Errorf("failed to create roles: %w", err)
	}
	log.Printf("✓ %d roles available", len(roles))

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	vichars, err := s.CreateVichars(users, opts.NumVichars)
	if err != nil {
		return fmt.Errorf("failed to create vichars: %w", err)
	}
	log.Printf("✓ %d vichars created", len(vichars))

	collabs, err := s.CreateCollaborators(users, vichars, roles)
	if err != nil {
		return fmt.Errorf("failed to create collaborators: %w", err)
	}
	log.Printf("✓ %d collaborations created", collabs)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// ClearAll deletes seeded data in FK order. Deletes rather than truncates so
// it works on both postgres and sqlite.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	for _, model := range []any{
		&models.Collaborator{},
		&models.Vichar{},
		&models.Role{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// EnsureBuiltinRoles creates the default role set if missing.
func (s *Seeder) EnsureBuiltinRoles() ([]models.Role, error) {
	builtins := []models.Role{
		{Name: "viewer", Permissions: []string{
			models.PermViewVichar,
		}},
		{Name: "editor", Permissions: []string{
			models.PermViewVichar,
			models.PermEditVichar,
		}},
		{Name: "manager", Permissions: []string{
			models.PermViewVichar,
			models.PermEditVichar,
			models.PermDeleteVichar,
			models.PermAddCollaborator,
			models.PermRemoveCollaborator,
			models.PermViewCollaborators,
		}},
	}

	roles := make([]models.Role, 0, len(builtins))
	for _, role := range builtins {
		existing := models.Role{}
		err := s.db.Where("name = ?", role.Name).First(&existing).Error
		switch {
		case err == nil:
			roles = append(roles, existing)
			continue
		case err != gorm.ErrRecordNotFound:
			return nil, err
		}
		if err := s.db.Create(&role).Error; err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// CreateUsers creates n users with fake identities. The first user is an
// admin named "admin".
func (s *Seeder) CreateUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n+1)
	adminEmail := "admin@vicharak.local"
	admin := models.User{
		Username: "admin",
		Email:    &adminEmail,
		Name:     "Admin",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		email := fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, gofakeit.DomainName())
		user := models.User{
			Username: s.username(first, last, i),
			Email:    &email,
			Name:     first + " " + last,
			Password: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) username(first, last string, i int) string {
	formats := []string{"%s%s%d", "%s.%s%d", "%s_%s%d"}
	format := formats[s.rng.Intn(len(formats))]
	name := fmt.Sprintf(format, strings.ToLower(first), strings.ToLower(last), i)
	if len(name) > 30 {
		name = name[:30]
	}
	return name
}

// CreateVichars spreads n vichars across the given users with realistic
// timestamps. Roughly one in ten ends up soft-deleted so the trash endpoints
// have data to show.
func (s *Seeder) CreateVichars(users []models.User, n int) ([]models.Vichar, error) {
	if len(users) == 0 {
		return nil, nil
	}

	vichars := make([]models.Vichar, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		title := gofakeit.Sentence(3)
		if len(title) > 50 {
			title = title[:50]
		}
		vichar := models.Vichar{
			UserID:    owner.ID,
			Title:     strings.TrimSuffix(title, "."),
			Body:      gofakeit.Paragraph(2, 4, 8, "\n\n"),
			CreatedAt: s.pastTime(90),
		}
		if s.rng.Intn(10) == 0 {
			deletedAt := time.Now().Add(-time.Duration(s.rng.Intn(72)) * time.Hour)
			vichar.DeletedAt = &deletedAt
		}
		if err := s.db.Create(&vichar).Error; err != nil {
			return nil, err
		}
		vichars = append(vichars, vichar)
	}
	return vichars, nil
}

// CreateCollaborators adds up to three collaborators per vichar with a random
// built-in role (or none).
func (s *Seeder) CreateCollaborators(users []models.User, vichars []models.Vichar, roles []models.Role) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, vichar := range vichars {
		seen := map[uint]bool{vichar.UserID: true}
		for i := 0; i < s.rng.Intn(4); i++ {
			user := users[s.rng.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true

			collaborator := models.Collaborator{
				VicharID: vichar.ID,
				OwnerID:  vichar.UserID,
				UserID:   user.ID,
			}
			// a quarter of collaborators have no role at all
			if len(roles) > 0 && s.rng.Intn(4) != 0 {
				roleID := roles[s.rng.Intn(len(roles))].ID
				collaborator.RoleID = &roleID
			}
			if err := s.db.Create(&collaborator).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
