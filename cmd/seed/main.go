package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"

	"todolist/internal/config"
	"todolist/internal/db"
	"todolist/internal/model"
	"todolist/internal/repository"
	"todolist/internal/service"
	"todolist/internal/validation"
)

// SeedTodoData is a todo entry of the seed source.
type SeedTodoData struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SeedUserData is a user entry of the seed source.
type SeedUserData struct {
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Password string         `json:"password"`
	Todos    []SeedTodoData `json:"todos"`
}

var demoUsers = []SeedUserData{
	{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "password123",
		Todos: []SeedTodoData{
			{Title: "Buy groceries"},
			{Title: "Book dentist appointment", Completed: true},
		},
	},
	{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "password123",
		Todos: []SeedTodoData{
			{Title: "Renew passport"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users := demoUsers
	if source := os.Getenv("SEED_SOURCE"); source != "" {
		log.Printf("Loading users from: %s", source)
		users, err = loadUsers(source)
		if err != nil {
			log.Fatalf("Failed to load users: %v", err)
		}
	}
	log.Printf("Loaded %d users", len(users))

	ctx := context.Background()
	log.Println("Seeding users into database...")
	created, skipped, err := seedUsers(ctx,
		repository.NewUserRepository(gormDB),
		repository.NewTodoRepository(gormDB),
		users,
	)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing or invalid users skipped: %d", skipped)
}

// loadUsers reads seed users from an http(s) URL or a local file.
func loadUsers(source string) ([]SeedUserData, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed source: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		body, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	var users []SeedUserData
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

// seedUsers creates missing users along with their todos. Existing users and
// entries that fail validation are skipped.
func seedUsers(ctx context.Context, users repository.UserRepository, todos repository.TodoRepository, data []SeedUserData) (created int, skipped int, err error) {
	for _, item := range data {
		email := validation.NormalizeEmail(item.Email)

		_, err := users.FindByEmail(ctx, email)
		if err == nil {
			log.Printf("Skipping existing user %s", email)
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("error checking user %s: %w", email, err)
		}

		reg := validation.Registration{
			Email:    email,
			Name:     validation.NormalizeName(item.Name),
			Password: item.Password,
		}
		if errs := validation.ValidateRegistration(reg, false); len(errs) > 0 {
			log.Printf("Skipping invalid user %s: %v", email, errs)
			skipped++
			continue
		}

		hashed, err := service.HashPassword(reg.Password)
		if err != nil {
			return created, skipped, err
		}
		user := &model.User{Email: reg.Email, Name: reg.Name, PasswordHash: hashed}
		if err := users.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", email, err)
		}

		for _, t := range item.Todos {
			if errs := validation.ValidateTodo(t.Title, true); len(errs) > 0 {
				log.Printf("Skipping invalid todo for %s: %v", email, errs)
				continue
			}
			todo := &model.Todo{Title: t.Title, Completed: t.Completed, OwnerID: user.ID}
			if err := todos.Create(ctx, todo); err != nil {
				return created, skipped, fmt.Errorf("error creating todo for %s: %w", email, err)
			}
		}
		created++
	}

	return created, skipped, nil
}
