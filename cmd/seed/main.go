// Command seed populates the database with sample posts and comments for
// local development.
package main

import (
	"context"
	"log"
	"math/rand"

	"ember/internal/config"
	"ember/internal/database"
	"ember/internal/models"
	"ember/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

var categories = []string{
	"technology", "sports", "travel", "cooking", "music",
	"gaming", "science", "books", "fitness", "art",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ctx := context.Background()

	subjects := make([]string, 8)
	for i := range subjects {
		subjects[i] = gofakeit.Username()
	}

	for i := 0; i < 25; i++ {
		post := &models.Post{
			Title:       gofakeit.Sentence(6),
			Description: gofakeit.Paragraph(2, 4, 12, " "),
			Categories:  pickCategories(),
			CreatedBy:   subjects[rand.Intn(len(subjects))],
			VoteCount:   rand.Intn(50) - 10,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}

		for j := 0; j < rand.Intn(6); j++ {
			comment := &models.Comment{
				Content:   gofakeit.Sentence(12),
				PostID:    post.ID,
				CreatedBy: subjects[rand.Intn(len(subjects))],
				Votes:     rand.Intn(20) - 5,
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				log.Fatalf("Failed to create comment: %v", err)
			}
		}
	}

	log.Println("Seed data created successfully")
}

func pickCategories() []string {
	n := 1 + rand.Intn(3)
	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(categories))[:n] {
		picked = append(picked, categories[i])
	}
	return picked
}
