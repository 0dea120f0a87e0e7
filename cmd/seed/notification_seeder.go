package main

import (
	"log"

	"ai-learning-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "SESSION_CREATED",
			DisplayName: "Session Started",
			Template:    "New tutoring session on chapter {chapter_key}",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "SESSION_RENAMED",
			DisplayName: "Session Renamed",
			Template:    "Session renamed to \"{title}\"",
			Priority:    "LOW",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "CHAPTER_COMPLETED",
			DisplayName: "Chapter Completed",
			Template:    "You completed chapter \"{title}\"",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "COURSE_COMPLETED",
			DisplayName: "Course Completed",
			Template:    "Congratulations! You finished \"{title}\"",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		if err := db.Where("code = ?", t.Code).First(&existing).Error; err == nil {
			log.Printf("Notification type '%s' already exists, skipping...", t.Code)
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Printf("Error: Failed to seed notification type '%s': %v", t.Code, err)
			continue
		}
		log.Printf("Seeded notification type '%s'", t.Code)
	}
}
