package main

import (
	"fmt"
	"log"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/service"
)

// 向数据库写入演示数据：两个账号、两个分类、一个地点和几篇文章。
// 已存在文章时直接退出，避免重复填充。
func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.Post{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to inspect database: %v", err)
	}
	if count > 0 {
		fmt.Println("posts already present, nothing to seed")
		return
	}

	users := service.NewUserService(db.DB)
	categories := service.NewCategoryService(db.DB)
	locations := service.NewLocationService(db.DB)
	posts := service.NewPostService(db.DB)

	alice, err := users.Register("alice", "alice@example.com", "alice-password")
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	bob, err := users.Register("bob", "bob@example.com", "bob-password")
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	travel, err := categories.Create("Travel", "Trip reports and route notes", "travel")
	if err != nil {
		log.Fatalf("failed to create category: %v", err)
	}
	food, err := categories.Create("Food", "Recipes and restaurant reviews", "food")
	if err != nil {
		log.Fatalf("failed to create category: %v", err)
	}

	lisbon, err := locations.Create("Lisbon")
	if err != nil {
		log.Fatalf("failed to create location: %v", err)
	}

	now := time.Now()
	seedPosts := []service.PostInput{
		{
			Title:       "A week on the Portuguese coast",
			Text:        "Notes from seven days of trains, tiles and custard tarts.",
			PubDate:     now.Add(-72 * time.Hour),
			IsPublished: true,
			AuthorID:    alice.ID,
			CategoryID:  &travel.ID,
			LocationID:  &lisbon.ID,
		},
		{
			Title:       "Sourdough, third attempt",
			Text:        "The starter finally survived the weekend. Full recipe inside.",
			PubDate:     now.Add(-24 * time.Hour),
			IsPublished: true,
			AuthorID:    bob.ID,
			CategoryID:  &food.ID,
		},
		{
			Title:       "Scheduled: year in review",
			Text:        "This one goes live next month.",
			PubDate:     now.Add(30 * 24 * time.Hour),
			IsPublished: true,
			AuthorID:    alice.ID,
			CategoryID:  &travel.ID,
		},
	}

	for _, input := range seedPosts {
		if _, err := posts.Create(input); err != nil {
			log.Fatalf("failed to create post: %v", err)
		}
	}

	fmt.Println("seeded:", len(seedPosts), "posts")
}
