package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/civicpulse/backend/internal/database"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/services"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// UserData represents the structure of users in the JSON file
type UserData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// GrievanceData represents the structure of sample grievances in the JSON file
type GrievanceData struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Zone        string  `json:"zone"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address"`
	Submitter   string  `json:"submitter"` // email of the submitting citizen
}

// JSONData represents the structure of the seed file
type JSONData struct {
	Users      []UserData      `json:"users"`
	Grievances []GrievanceData `json:"grievances"`
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Connect to database
	database.Connect()

	// Run migrations first
	log.Println("Running database migrations...")
	database.AutoMigrate()

	log.Println("Seeding database with sample data...")

	data, err := loadSeedData()
	if err != nil {
		log.Fatalf("Error loading seed data: %v", err)
	}

	if err := seedUsers(data.Users); err != nil {
		log.Printf("Error seeding users: %v", err)
	}
	if err := seedGrievances(data.Grievances); err != nil {
		log.Printf("Error seeding grievances: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

func loadSeedData() (*JSONData, error) {
	raw, err := os.ReadFile("data/seed.json")
	if err != nil {
		return nil, err
	}

	var data JSONData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func seedUsers(users []UserData) error {
	db := database.GetDB()

	for _, u := range users {
		var existing models.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", u.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Name:       u.Name,
			Email:      u.Email,
			Password:   string(hashed),
			Role:       models.UserRole(u.Role),
			Department: u.Department,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Created user %s (%s)", u.Email, u.Role)
	}
	return nil
}

func seedGrievances(grievances []GrievanceData) error {
	db := database.GetDB()
	grievanceService := services.NewGrievanceService(db, services.NewRandomIDGenerator())

	for _, g := range grievances {
		var submitter models.User
		if err := db.Where("email = ?", g.Submitter).First(&submitter).Error; err != nil {
			log.Printf("Submitter %s not found, skipping grievance %q", g.Submitter, g.Title)
			continue
		}

		created, err := grievanceService.Create(services.CreateGrievanceInput{
			Title:           g.Title,
			Description:     g.Description,
			Category:        g.Category,
			Zone:            g.Zone,
			LocationLat:     g.Lat,
			LocationLng:     g.Lng,
			LocationAddress: g.Address,
		}, submitter.ID, submitter.Name)
		if err != nil {
			return err
		}
		log.Printf("Created grievance %s (%s)", created.GrievanceID, created.Category)
	}
	return nil
}
