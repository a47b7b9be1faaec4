package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/pageforge/pageforge-backend/internal/application"
	"github.com/pageforge/pageforge-backend/internal/application/commands"
	"github.com/pageforge/pageforge-backend/internal/application/query"
	"github.com/pageforge/pageforge-backend/internal/infra/client/authority"
	ai "github.com/pageforge/pageforge-backend/internal/infra/client/openai"
	"github.com/pageforge/pageforge-backend/internal/infra/payments"
	"github.com/pageforge/pageforge-backend/internal/infra/storage"
	"github.com/pageforge/pageforge-backend/internal/presentation/rest"
	"github.com/pageforge/pageforge-backend/pkg/db"
	"github.com/pageforge/pageforge-backend/pkg/env"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	ctx := context.Background()

	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(ctx, dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	if err = pool.Ping(ctx); err != nil {
		log.Panicf("failed to ping db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Panicf("failed to load aws config: %v", err)
	}
	drafts := storage.NewDraftStorage(awsCfg)

	aiClient := ai.NewOpenAIClient(ai.NewOpenAIConfig())
	stripeProvider := payments.NewStripeProvider(payments.NewPaymentConfig())
	authorityClient := authority.NewAuthorityClient(authority.NewAuthorityConfig())

	moderate := commands.NewModerate(aiClient)
	verifyAccess := commands.NewVerifyAccess(uowFactory, authorityClient, commands.NewEditTokenConfig())
	handlers := &application.Handlers{
		GenerateSite:   commands.NewGenerateSite(aiClient, moderate),
		CreateCheckout: commands.NewCreateCheckout(drafts, stripeProvider, moderate),
		PublishSite:    commands.NewPublishSite(uowFactory, drafts),
		RefineSite:     commands.NewRefineSite(uowFactory, aiClient, verifyAccess),
		VerifyAccess:   verifyAccess,
		TrackEvent:     commands.NewTrackEvent(uowFactory),
		Migrate:        commands.NewMigrate(uowFactory),
		GetSite:        query.NewGetSite(uowFactory),
	}

	handler := rest.NewServer(handlers, stripeProvider)
	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: env.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
	rest.RegisterHandlers(app, handler)

	go func() {
		if err := app.Listen(":" + env.GetEnv("PORT", "8080")); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()

	fmt.Println("Running cleanup tasks...")

	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}
