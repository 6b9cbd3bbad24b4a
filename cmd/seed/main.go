package main

import (
	"log"
	"os"

	"email-responder-be/internal/model"
	"email-responder-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the knowledge base with starter snippets so grounded generation
// has something to retrieve on a fresh install. Embeddings are produced
// by the running service when snippets are created through the API, so
// after seeding directly you should re-save snippets there, or run the
// embed consumer against these rows.
func main() {
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

	seedSnippets(db)
}

func seedSnippets(db *gorm.DB) {
	snippets := []model.KnowledgeSnippet{
		{
			Title:   "Office hours",
			Content: "Office hours are Tuesday and Thursday 14:00-16:00 in room B204. No appointment needed, drop by with questions about coursework or exams.",
			Intent:  "academic",
		},
		{
			Title:   "Exam coverage policy",
			Content: "Midterm exams cover all lecture material and assigned readings up to the week before the exam. Practice problems are posted one week in advance.",
			Intent:  "academic",
		},
		{
			Title:   "Assignment extensions",
			Content: "Extensions of up to 48 hours are granted for documented medical or family emergencies. Email before the deadline with a short explanation.",
			Intent:  "academic",
		},
		{
			Title:   "Internship availability",
			Content: "I am available for summer internships starting in June. My areas of interest are backend services, data pipelines, and infrastructure tooling.",
			Intent:  "internship",
		},
		{
			Title:   "Interview scheduling",
			Content: "For interviews, weekday afternoons work best. Please send a calendar invite with a video link at least two days in advance.",
			Intent:  "internship",
		},
		{
			Title:   "Account troubleshooting basics",
			Content: "For login problems, first reset the password from the sign-in page. If the reset email does not arrive within ten minutes, check spam and then reply with the account email so we can look into delivery.",
			Intent:  "support",
		},
		{
			Title:   "Refund turnaround",
			Content: "Approved refunds are issued to the original payment method within 5-7 business days. We confirm by email when the refund is submitted.",
			Intent:  "support",
		},
	}

	created := 0
	for _, snippet := range snippets {
		res := db.Where("title = ?", snippet.Title).FirstOrCreate(&snippet)
		if res.Error != nil {
			log.Printf("Warn: Failed to seed snippet %q: %v", snippet.Title, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			created++
		}
	}

	log.Printf("✅ Seeding finished, %d new snippets", created)
}
