package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"recurring-planner/internal/config"
	"recurring-planner/internal/repository"
	"recurring-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	categorySvc := service.NewCategoryService(categoryRepo)
	occurrenceSvc := service.NewOccurrenceService(taskRepo)
	summarySvc := service.NewSummaryService(taskRepo, categorySvc)
	exportSvc := service.NewExportService()

	// Make sure the configured owner account exists with its default
	// categories before the first top-up runs.
	if cfg.OwnerEmail != "" {
		owner, err := userRepo.UpsertByEmail(ctx, cfg.OwnerEmail, cfg.OwnerName)
		if err != nil {
			log.Fatalf("bootstrap owner: %v", err)
		}
		if err := categorySvc.EnsureDefaults(ctx, owner); err != nil {
			log.Fatalf("bootstrap categories: %v", err)
		}
	}

	topUp := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := userRepo.ListAll(jobCtx)
		if err != nil {
			log.Printf("top-up: list users: %v", err)
			return
		}
		now := time.Now()
		for _, user := range users {
			res, err := occurrenceSvc.TopUpUser(jobCtx, user.ID, now)
			if err != nil {
				log.Printf("top-up %s: %v", user.Email, err)
				continue
			}
			if res.Created > 0 || res.Skipped > 0 {
				log.Printf("top-up %s: %d templates, %d occurrences created, %d skipped",
					user.Email, res.Templates, res.Created, res.Skipped)
			}
			if cfg.ExportDir != "" {
				exportUser(jobCtx, taskRepo, exportSvc, cfg.ExportDir, user.ID, now)
			}
		}
	}

	summaries := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		users, err := userRepo.ListAll(jobCtx)
		if err != nil {
			log.Printf("summary: list users: %v", err)
			return
		}
		for _, user := range users {
			text, err := summarySvc.DailySummary(jobCtx, user, time.Now())
			if err != nil {
				log.Printf("summary %s: %v", user.Email, err)
				continue
			}
			log.Printf("summary for %s:\n%s", user.Email, text)
		}
	}

	scheduler := service.NewScheduler(time.Local)
	if err := scheduler.Every(cfg.TopUpInterval, topUp); err != nil {
		log.Fatalf("schedule top-up: %v", err)
	}
	if err := scheduler.Daily(cfg.SummaryTime, summaries); err != nil {
		log.Fatalf("schedule summaries: %v", err)
	}

	// Catch up immediately on start; the horizon may have drifted while the
	// daemon was down.
	topUp()

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Recurring planner started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}

func exportUser(ctx context.Context, taskRepo *repository.TaskRepository, exportSvc *service.ExportService, dir, userID string, now time.Time) {
	tasks, err := taskRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("export %s: %v", userID, err)
		return
	}
	data, err := exportSvc.WriteICS(tasks, now)
	if err != nil {
		log.Printf("export %s: %v", userID, err)
		return
	}
	path := filepath.Join(dir, userID+".ics")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("export %s: %v", userID, err)
	}
}
