package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"fitbook/internal/database"
	"fitbook/internal/domain"
	"fitbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fitbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Cleanup old data (safe order for foreign keys)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM booking_requests")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM availability_blocks")
	db.Exec("DELETE FROM training_services")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@fitbook.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("seed admin failed:", err)
	}

	for i, email := range []string{"alex@client.local", "maria@client.local", "sam@client.local"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		c := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         fmt.Sprintf("Client %d", i+1),
			Phone:        fmt.Sprintf("+1 555 010 %04d", i+1),
		}
		if err := userRepo.Create(ctx, c); err != nil {
			log.Fatal("seed client failed:", err)
		}
	}

	trainers := make([]*domain.User, 0, 2)
	for i, email := range []string{"kate@trainer.local", "igor@trainer.local"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("trainer123"), bcrypt.DefaultCost)
		t := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleProvider,
			Name:         fmt.Sprintf("Trainer %d", i+1),
		}
		if err := userRepo.Create(ctx, t); err != nil {
			log.Fatal("seed trainer failed:", err)
		}
		trainers = append(trainers, t)
	}

	log.Println("Creating services...")
	for _, t := range trainers {
		for _, svc := range []domain.TrainingService{
			{ProviderID: t.ID, Name: "Personal training", DurationMinutes: 60, Price: 50, Active: true},
			{ProviderID: t.ID, Name: "Intro consultation", DurationMinutes: 30, Price: 0, Active: true},
			{ProviderID: t.ID, Name: "Extended session", DurationMinutes: 90, Price: 70, Active: true},
		} {
			s := svc
			if err := serviceRepo.Create(ctx, &s); err != nil {
				log.Fatal("seed service failed:", err)
			}
		}
	}

	log.Println("Creating weekly availability...")
	for _, t := range trainers {
		// Mon-Fri mornings and afternoons, with a blocked midday window on Wednesday
		for day := 1; day <= 5; day++ {
			morning := domain.AvailabilityBlock{
				ProviderID: t.ID,
				BlockType:  domain.BlockAvailable,
				Recurrence: domain.RecurrenceWeekly,
				DayOfWeek:  day,
				StartHour:  9,
				EndHour:    12,
			}
			afternoon := domain.AvailabilityBlock{
				ProviderID: t.ID,
				BlockType:  domain.BlockAvailable,
				Recurrence: domain.RecurrenceWeekly,
				DayOfWeek:  day,
				StartHour:  14,
				EndHour:    18,
			}
			if err := availRepo.Create(ctx, &morning); err != nil {
				log.Fatal("seed availability failed:", err)
			}
			if err := availRepo.Create(ctx, &afternoon); err != nil {
				log.Fatal("seed availability failed:", err)
			}
		}

		lunch := domain.AvailabilityBlock{
			ProviderID: t.ID,
			BlockType:  domain.BlockBlocked,
			Recurrence: domain.RecurrenceWeekly,
			DayOfWeek:  3,
			StartHour:  11,
			EndHour:    13,
		}
		if err := availRepo.Create(ctx, &lunch); err != nil {
			log.Fatal("seed availability failed:", err)
		}
	}

	log.Println("Seed completed")
	log.Println("Admin:    admin@fitbook.local / admin123")
	log.Println("Clients:  alex@client.local maria@client.local sam@client.local / client123")
	log.Println("Trainers: kate@trainer.local igor@trainer.local / trainer123")
}
