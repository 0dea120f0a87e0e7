package main

import (
	"log"
	"os"

	"ai-learning-be/internal/model"
	"ai-learning-be/pkg/database"

	"github.com/joho/godotenv"
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

	SeedCourseCatalog(db)
	SeedNotificationTypes(db)

	log.Println("✅ Seeding complete")
}

// SeedCourseCatalog inserts a starter course with its syllabus chapters.
func SeedCourseCatalog(db *gorm.DB) {
	log.Println("Seeding Course Catalog...")

	type chapterSeed struct {
		Key       string
		Title     string
		Ordinal   int
		IsVirtual bool
	}

	courses := []struct {
		Slug        string
		Title       string
		Description string
		Chapters    []chapterSeed
	}{
		{
			Slug:        "go-fundamentals",
			Title:       "Go Fundamentals",
			Description: "From zero to writing idiomatic Go services.",
			Chapters: []chapterSeed{
				{Key: "getting-started", Title: "Getting Started", Ordinal: 1},
				{Key: "types-and-structs", Title: "Types and Structs", Ordinal: 2},
				{Key: "interfaces", Title: "Interfaces", Ordinal: 3},
				{Key: "concurrency", Title: "Concurrency", Ordinal: 4},
				{Key: "scratchpad", Title: "Scratchpad", Ordinal: 99, IsVirtual: true},
			},
		},
		{
			Slug:        "sql-essentials",
			Title:       "SQL Essentials",
			Description: "Querying, modeling and transactions in PostgreSQL.",
			Chapters: []chapterSeed{
				{Key: "select-basics", Title: "SELECT Basics", Ordinal: 1},
				{Key: "joins", Title: "Joins", Ordinal: 2},
				{Key: "transactions", Title: "Transactions", Ordinal: 3},
			},
		},
	}

	for _, c := range courses {
		var existing model.Course
		if err := db.Where("slug = ?", c.Slug).First(&existing).Error; err == nil {
			log.Printf("Course '%s' already exists, skipping...", c.Slug)
			continue
		}

		course := model.Course{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
		}
		if err := db.Create(&course).Error; err != nil {
			log.Printf("Error: Failed to seed course '%s': %v", c.Slug, err)
			continue
		}

		for _, ch := range c.Chapters {
			chapter := model.Chapter{
				CourseId:  course.Id,
				Key:       ch.Key,
				Title:     ch.Title,
				Ordinal:   ch.Ordinal,
				IsVirtual: ch.IsVirtual,
			}
			if err := db.Create(&chapter).Error; err != nil {
				log.Printf("Error: Failed to seed chapter '%s': %v", ch.Key, err)
			}
		}
		log.Printf("Seeded course '%s' with %d chapters", c.Slug, len(c.Chapters))
	}
}
