package email

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	core "worktime.service/internal/core"
	"worktime.service/internal/core/model"
	"worktime.service/internal/ports/messaging"
	"worktime.service/internal/ports/repository"
)

// Processor handles messages from the email queue: one summary email per
// recorded work day, idempotent via the stored delivery status.
type Processor struct {
	emailService core.EmailService
	repo         repository.Repository
	// Recipient addresses are employeeID@domain; the roster carries no
	// address field of its own.
	domain string
}

// NewProcessor sets up a new processor for handling email jobs. It needs an
// email service to send emails and a repository to update the job status.
func NewProcessor(emailService core.EmailService, repo repository.Repository, domain string) *Processor {
	return &Processor{
		emailService: emailService,
		repo:         repo,
		domain:       domain,
	}
}

// Process is the main entry point for handling a message from the email queue.
// It tries to send an email and will tell the worker to retry if something goes wrong.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.DaySummaryEmailEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal email event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.repo.GetWorkDay(ctx, event.WorkDayID)
	if err != nil {
		// If we can't get the record, retry after a short delay.
		return true, 10, fmt.Errorf("failed to get record from db for email processing: %w", err)
	}
	if record == nil {
		return false, 0, fmt.Errorf("work day %d no longer exists", event.WorkDayID)
	}

	if record.EmailStatus == model.StatusEmailCompleted {
		log.Ctx(ctx).Info().Int64("work_day_id", event.WorkDayID).Msg("Email already sent. Skipping.")
		return false, 0, nil
	}

	to := fmt.Sprintf("%s@%s", event.EmployeeID, p.domain)
	if err := p.emailService.SendDaySummary(ctx, to, event.Date, event.NetHours); err != nil {
		newCount := record.EmailRetries + 1
		p.repo.UpdateEmailStatus(ctx, event.WorkDayID, model.StatusEmailPending, newCount)
		return true, emailBackoff(newCount), err
	}

	err = p.repo.UpdateEmailStatus(ctx, event.WorkDayID, model.StatusEmailCompleted, 0)
	return false, 0, err
}

func emailBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 900 {
		return 900 // cap email retries at 15 minutes
	}
	return backoff
}
