package main

import (
	"fmt"
	"net/http"

	"github.com/qanda-labs/engage-backend-go/internal/config"
	appHTTP "github.com/qanda-labs/engage-backend-go/internal/handler/http"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/cache"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/database"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/jwt"
	"github.com/qanda-labs/engage-backend-go/internal/pkg/sse"
	"github.com/qanda-labs/engage-backend-go/internal/repository/cached"
	"github.com/qanda-labs/engage-backend-go/internal/repository/postgresql"
	"github.com/qanda-labs/engage-backend-go/internal/service/fanout"
	notificationService "github.com/qanda-labs/engage-backend-go/internal/service/notification"
	subscriptionService "github.com/qanda-labs/engage-backend-go/internal/service/subscription"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// Repositories, each read path behind its cache decorator.
	store := cache.NewMemory()
	subscriptionRepo := cached.NewSubscriptionRepository(postgresql.NewSubscriptionRepository(db), store)
	notificationRepo := cached.NewNotificationRepository(postgresql.NewNotificationRepository(db), store)
	postRepo := postgresql.NewPostRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	subscriptionSvc := subscriptionService.NewSubscriptionService(subscriptionRepo)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	engine := fanout.NewEngine(postRepo, subscriptionSvc, notificationSvc, cfg.IsFeatureEnabled)

	authHandler := appHTTP.NewAuthHandler(JWTService)
	subscriptionHandler := appHTTP.NewSubscriptionHandler(subscriptionSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, JWTService)
	eventHandler := appHTTP.NewEventHandler(engine)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		subscriptionHandler,
		notificationHandler,
		eventHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
