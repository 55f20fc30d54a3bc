package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fitbook/internal/database"
	"fitbook/internal/middleware"
	"fitbook/internal/modules/auth"
	"fitbook/internal/modules/availability"
	"fitbook/internal/modules/booking"
	"fitbook/internal/modules/catalog"
	"fitbook/internal/modules/notification"
	"fitbook/internal/modules/request"
	jwtsvc "fitbook/internal/pkg/jwt"
	"fitbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewBookingRequestRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := notification.NewHub()
	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	availService := availability.NewService(availRepo, bookingRepo)
	availHandler := availability.NewHandler(availService)

	bookingService := booking.NewService(bookingRepo, serviceRepo, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	requestService := request.NewService(requestRepo, serviceRepo, notifService, request.Config{
		RequireChosenPreferredTime: os.Getenv("REQUIRE_CHOSEN_PREFERRED_TIME") == "true",
	})
	requestHandler := request.NewHandler(requestService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// websocket authenticates via query token inside the handler
		notifHandler.RegisterWS(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			availHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			providerOnly := protected.Group("/")
			providerOnly.Use(middleware.ProviderOnly())
			{
				availHandler.RegisterProviderRoutes(providerOnly)
				catalogHandler.RegisterProviderRoutes(providerOnly)
			}
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
