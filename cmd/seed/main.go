package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"taskr/internal/auth"
	"taskr/internal/config"
	"taskr/internal/db"
	"taskr/internal/model"
	"taskr/internal/repository"
)

// SeedUser represents one user entry in the seed file.
type SeedUser struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	Tasks    []SeedTask `json:"tasks"`
}

// SeedTask represents one task entry in the seed file.
type SeedTask struct {
	Name     string `json:"name"`
	DueDate  string `json:"due_date"`
	Priority int    `json:"priority"`
	Status   int    `json:"status"`
}

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
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := loadSeedUsers(os.Getenv("SEED_FILE"))
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	log.Printf("Loaded %d seed users", len(users))

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	if existing, err := userRepo.Count(ctx); err == nil {
		log.Printf("Database currently holds %d users", existing)
	}

	log.Println("Seeding users and tasks into database...")
	seededUsers, seededTasks, err := seed(ctx, userRepo, taskRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", seededUsers)
	log.Printf("  - New tasks created: %d", seededTasks)
}

// loadSeedUsers reads the seed file if one is configured, falling back to
// built-in demo data.
func loadSeedUsers(path string) ([]SeedUser, error) {
	if path == "" {
		return defaultSeedUsers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return users, nil
}

func defaultSeedUsers() []SeedUser {
	return []SeedUser{
		{
			Name:     "admin",
			Email:    "admin@taskr.local",
			Password: "allpowerful",
			Role:     model.RoleAdmin,
		},
		{
			Name:     "newGuy",
			Email:    "newGuy@taskr.local",
			Password: "passwordOne",
			Role:     model.RoleUser,
			Tasks: []SeedTask{
				{Name: "Go to the bank", DueDate: "2019-01-30", Priority: 1, Status: model.StatusOpen},
				{Name: "Run around in circles", DueDate: "2019-02-10", Priority: 10, Status: model.StatusOpen},
			},
		},
	}
}

// seed inserts users and their tasks, skipping users that already exist.
func seed(ctx context.Context, userRepo repository.UserRepository, taskRepo repository.TaskRepository, users []SeedUser) (seededUsers int, seededTasks int, err error) {
	for _, entry := range users {
		existing, err := userRepo.FindByName(ctx, entry.Name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seededUsers, seededTasks, fmt.Errorf("error checking user %s: %w", entry.Name, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", entry.Name)
			continue
		}

		hash, err := auth.HashPassword(entry.Password)
		if err != nil {
			return seededUsers, seededTasks, fmt.Errorf("error hashing password for %s: %w", entry.Name, err)
		}

		role := entry.Role
		if role == "" {
			role = model.RoleUser
		}
		user := &model.User{
			Name:         entry.Name,
			Email:        entry.Email,
			PasswordHash: hash,
			Role:         role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return seededUsers, seededTasks, fmt.Errorf("error creating user %s: %w", entry.Name, err)
		}
		seededUsers++

		for _, t := range entry.Tasks {
			dueDate, err := time.Parse("2006-01-02", t.DueDate)
			if err != nil {
				log.Printf("Skipping task %q with invalid due date: %s", t.Name, t.DueDate)
				continue
			}
			status := t.Status
			if status != model.StatusClosed {
				status = model.StatusOpen
			}
			task := &model.Task{
				Name:       t.Name,
				DueDate:    dueDate,
				Priority:   t.Priority,
				PostedDate: time.Now(),
				Status:     status,
				OwnerID:    user.ID,
			}
			if err := taskRepo.Create(ctx, task); err != nil {
				return seededUsers, seededTasks, fmt.Errorf("error creating task %q: %w", t.Name, err)
			}
			seededTasks++
		}
	}

	return seededUsers, seededTasks, nil
}
