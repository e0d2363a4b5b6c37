package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"worktime.service/internal/core/model"
	"worktime.service/internal/ports/messaging"
	"worktime.service/internal/ports/repository"
)

// Processor handles jobs from the payroll queue, which involves calling the
// downstream payroll API. It uses a circuit breaker to avoid hammering that
// system if it's having issues.
type Processor struct {
	Repo   repository.Repository
	client Client
	cb     *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the payroll queue. It sets up a
// circuit breaker to protect the payroll API from being overwhelmed.
func NewProcessor(r repository.Repository, client Client) *Processor {
	settings := gobreaker.Settings{
		Name:        "Payroll-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &Processor{
		Repo:   r,
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

// Process is the core logic for handling a message from the payroll queue.
// It calls the payroll API through a circuit breaker and handles retries with exponential backoff.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.WorkDayRecordedEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal payroll event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.Repo.GetWorkDay(ctx, event.WorkDayID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get record from db: %w", err)
	}
	if record == nil {
		return false, 0, fmt.Errorf("work day %d no longer exists", event.WorkDayID)
	}

	if record.PayrollStatus == model.StatusPayrollCompleted {
		return false, 0, nil
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.client.ExportWorkDay(ctx, event)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping payroll API call")
		}
		newCount := record.PayrollRetries + 1
		p.Repo.UpdatePayrollStatus(ctx, event.WorkDayID, model.StatusPayrollPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.Repo.UpdatePayrollStatus(ctx, event.WorkDayID, model.StatusPayrollCompleted, 0)
	return false, 0, err
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
