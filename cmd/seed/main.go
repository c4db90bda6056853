package main

import (
	"log"
	"os"
	"time"

	"facelog-be/internal/model"
	"facelog-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding FaceLog demo data\n")

	seedUser(db, model.User{
		Username:  "admin@facelog.local",
		Email:     "admin@facelog.local",
		FirstName: "Default",
		LastName:  "Admin",
		Role:      "admin",
	}, "admin123")

	seedUser(db, model.User{
		Username:  "instructor@facelog.local",
		Email:     "instructor@facelog.local",
		FirstName: "Laura",
		LastName:  "Gomez",
		Role:      "instructor",
	}, "instructor123")

	students := []model.User{
		{Username: "carlos.mendoza@facelog.local", Email: "carlos.mendoza@facelog.local", FirstName: "Carlos", LastName: "Mendoza", Role: "student", StudentCode: "ST-0001"},
		{Username: "ana.torres@facelog.local", Email: "ana.torres@facelog.local", FirstName: "Ana", LastName: "Torres", Role: "student", StudentCode: "ST-0002"},
		{Username: "diego.ruiz@facelog.local", Email: "diego.ruiz@facelog.local", FirstName: "Diego", LastName: "Ruiz", Role: "student", StudentCode: "ST-0003"},
		{Username: "maria.lopez@facelog.local", Email: "maria.lopez@facelog.local", FirstName: "Maria", LastName: "Lopez", Role: "student", StudentCode: "ST-0004"},
	}
	for i := range students {
		students[i] = *seedUser(db, students[i], "student123")
	}

	color.Yellow("\nSeeding demo ficha...")
	ficha := seedFicha(db, students)

	color.Yellow("\nSeeding recognition settings...")
	seedSettings(db)

	color.Green("\n✅ Seed complete")
	color.Green("   Admin:      admin@facelog.local / admin123")
	color.Green("   Instructor: instructor@facelog.local / instructor123")
	color.Green("   Students:   <name>@facelog.local / student123")
	color.Green("   Ficha:      %s (%s)", ficha.Number, ficha.Program)
}

func seedUser(db *gorm.DB, u model.User, password string) *model.User {
	var existing model.User
	if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		color.Yellow("User '%s' already exists, skipping...", u.Email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Failed to hash password for '%s': %v", u.Email, err)
		os.Exit(1)
	}

	u.Id = uuid.New()
	u.PasswordHash = string(hash)
	u.IsActive = true

	if err := db.Create(&u).Error; err != nil {
		color.Red("Failed to create user '%s': %v", u.Email, err)
		os.Exit(1)
	}
	color.Green("Created %s: %s %s (%s)", u.Role, u.FirstName, u.LastName, u.Email)
	return &u
}

func seedFicha(db *gorm.DB, students []model.User) *model.Ficha {
	var existing model.Ficha
	if err := db.Where("numero_ficha = ?", "2558104").First(&existing).Error; err == nil {
		color.Yellow("Ficha '2558104' already exists, skipping...")
		return &existing
	}

	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(1, 0, 0)
	ficha := model.Ficha{
		Id:        uuid.New(),
		Program:   "Software Development",
		Number:    "2558104",
		Schedule:  "morning",
		StartDate: &start,
		EndDate:   &end,
		Students:  students,
	}

	if err := db.Create(&ficha).Error; err != nil {
		color.Red("Failed to create ficha: %v", err)
		os.Exit(1)
	}
	color.Green("Created ficha %s with %d students", ficha.Number, len(students))
	return &ficha
}

func seedSettings(db *gorm.DB) {
	var existing model.RecognitionSettings
	if err := db.First(&existing, 1).Error; err == nil {
		color.Yellow("Recognition settings already exist, skipping...")
		return
	}

	settings := model.RecognitionSettings{
		Id:             1,
		Threshold:      0.6,
		DistanceMetric: "euclidean",
		DetectionModel: "hog",
	}
	if err := db.Create(&settings).Error; err != nil {
		color.Red("Failed to create recognition settings: %v", err)
		os.Exit(1)
	}
	color.Green("Created default recognition settings (threshold 0.6, euclidean, hog)")
}
