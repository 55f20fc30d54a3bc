package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"fitbook/internal/database"
	"fitbook/internal/modules/request"
	"fitbook/internal/repository"
)

// Pending requests expire lazily at read time; this job persists the expired
// status so reports and list filters see it without recomputing.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	requestRepo := repository.NewBookingRequestRepository(db)
	requestService := request.NewService(requestRepo, nil, nil, request.Config{})

	spec := os.Getenv("SWEEP_SCHEDULE")
	if spec == "" {
		spec = "*/10 * * * *"
	}

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := requestService.SweepExpired(ctx)
		if err != nil {
			log.Printf("sweep failed: %v", err)
			return
		}
		log.Printf("sweep completed: expired=%d", n)
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, sweep); err != nil {
		log.Fatalf("bad schedule %q: %v", spec, err)
	}

	sweep()
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
}
