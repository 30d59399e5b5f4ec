// Package main 初始化数据库结构和示例数据
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lecture-deck-api/internal/config"
	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/internal/domain/repository"
	"lecture-deck-api/internal/infrastructure/persistence/postgres"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer func() { _ = pgClient.Close() }()

	// 建表
	fmt.Println("Running schema migration...")
	if err := pgClient.DB().AutoMigrate(
		&entity.Lecture{},
		&entity.Activity{},
		&entity.DeckJob{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Schema migration completed.")

	// 可选的示例讲座，便于本地联调
	if os.Getenv("BOOTSTRAP_SEED_SAMPLE") == "" {
		fmt.Println("Bootstrap completed.")
		return
	}

	ctx := context.Background()
	lectureRepo := postgres.NewLectureRepository(pgClient)
	activityRepo := postgres.NewActivityRepository(pgClient)

	sampleTitle := "Introduction to Photosynthesis"
	existing, err := lectureRepo.List(ctx, &repository.LectureFilter{Search: sampleTitle}, repository.NewPagination(1, 1))
	if err != nil {
		log.Fatalf("failed to check existing lectures: %v", err)
	}
	if existing.Total > 0 {
		fmt.Println("Sample lecture already exists.")
		fmt.Println("Bootstrap completed.")
		return
	}

	fmt.Printf("Creating sample lecture: %s...\n", sampleTitle)
	lecture := entity.NewLecture(sampleTitle, "How plants convert light into chemical energy.")
	lecture.SetContent("<h2>Overview</h2><p>Photosynthesis converts light energy into glucose.</p>" +
		"<h2>Light Reactions</h2><p>Chlorophyll absorbs photons in the thylakoid membranes.</p>" +
		"<h2>Calvin Cycle</h2><p>Carbon dioxide is fixed into sugar in the stroma.</p>")
	if err := lectureRepo.Create(ctx, lecture); err != nil {
		log.Fatalf("failed to create sample lecture: %v", err)
	}

	activity := entity.NewActivity(lecture.ID, 1, "Where do the light reactions take place?", entity.ActivityKindMultipleChoice)
	activity.Options = []entity.ActivityOption{
		{Text: "Thylakoid membranes", Correct: true},
		{Text: "Stroma"},
		{Text: "Cell wall"},
	}
	if err := activityRepo.Create(ctx, activity); err != nil {
		log.Fatalf("failed to create sample activity: %v", err)
	}

	fmt.Printf("Sample lecture created with ID: %s\n", lecture.ID)
	fmt.Println("Bootstrap completed.")
}
