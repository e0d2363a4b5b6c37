// Entry point for the background delivery workers: payroll export and
// summary emails.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"worktime.service/internal/config"
	core "worktime.service/internal/core"
	"worktime.service/internal/ports/repository"
	"worktime.service/internal/worker"
	"worktime.service/internal/worker/email"
	"worktime.service/internal/worker/payroll"
	"worktime.service/pkg/aws"
	"worktime.service/pkg/database"
	"worktime.service/pkg/logger"
	"worktime.service/pkg/telemetry"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)

	shutdownTracer, err := telemetry.InitTracer("worktime-report-worker", cfg.OTLPEndpoint, cfg.IsLocalDev)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// DB connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()
	log.Info().Msg("Successfully connected to the database.")

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	// Initialize Dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)

	repo := repository.NewWorkDayRepository(db)

	payrollClient := payroll.NewHTTPClient(cfg.PayrollAPIURL)
	payrollProcessor := payroll.NewProcessor(repo, payrollClient)

	emailService := core.NewSESEmailService(sesClient, cfg.EmailSender)
	emailProcessor := email.NewProcessor(emailService, repo, cfg.EmailDomain)

	// Start Workers
	ctx, cancel := context.WithCancel(context.Background())

	payrollWorker := worker.NewWorker(sqsClient, cfg.PayrollSQSQueueURL, payrollProcessor)
	go payrollWorker.Start(ctx)

	emailWorker := worker.NewWorker(sqsClient, cfg.EmailSQSQueueURL, emailProcessor)
	go emailWorker.Start(ctx)

	// Wait for interrupt signal to shut the workers down.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down workers...")
	cancel()
}
