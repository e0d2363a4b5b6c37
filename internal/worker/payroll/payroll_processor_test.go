package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"worktime.service/internal/core/model"
	"worktime.service/internal/ports/messaging"
	"worktime.service/internal/ports/repository"
)

type fakeClient struct {
	calls int
	err   error
}

func (f *fakeClient) ExportWorkDay(context.Context, messaging.WorkDayRecordedEvent) error {
	f.calls++
	return f.err
}

func seedWorkDay(t *testing.T, repo *repository.MemoryRepository) *model.AttendanceRecord {
	t.Helper()
	saved, err := repo.UpsertWorkDay(context.Background(), &model.AttendanceRecord{
		EmployeeID: "e1",
		Date:       "2025-04-15",
		DayType:    model.DayTypeWork,
		TimeEntry:  &model.TimeEntry{StartTime: "09:00", EndTime: "17:00"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return saved
}

func eventMessage(t *testing.T, rec *model.AttendanceRecord) types.Message {
	t.Helper()
	body, err := json.Marshal(messaging.WorkDayRecordedEvent{
		WorkDayID:  rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		NetHours:   8,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return types.Message{Body: aws.String(string(body)), MessageId: aws.String("m-1")}
}

func TestProcessMarksCompletedOnSuccess(t *testing.T) {
	repo := repository.NewMemoryRepository()
	rec := seedWorkDay(t, repo)
	client := &fakeClient{}
	p := NewProcessor(repo, client)

	retry, _, err := p.Process(context.Background(), eventMessage(t, rec))
	if err != nil || retry {
		t.Fatalf("expected clean success, got retry=%v err=%v", retry, err)
	}
	if client.calls != 1 {
		t.Fatalf("expected one export call, got %d", client.calls)
	}

	stored, _ := repo.GetWorkDay(context.Background(), rec.ID)
	if stored.PayrollStatus != model.StatusPayrollCompleted {
		t.Fatalf("expected COMPLETED, got %s", stored.PayrollStatus)
	}
}

func TestProcessSkipsAlreadyCompleted(t *testing.T) {
	repo := repository.NewMemoryRepository()
	rec := seedWorkDay(t, repo)
	repo.UpdatePayrollStatus(context.Background(), rec.ID, model.StatusPayrollCompleted, 0)
	client := &fakeClient{}
	p := NewProcessor(repo, client)

	retry, _, err := p.Process(context.Background(), eventMessage(t, rec))
	if err != nil || retry {
		t.Fatalf("expected idempotent skip, got retry=%v err=%v", retry, err)
	}
	if client.calls != 0 {
		t.Fatalf("completed job must not call the payroll API")
	}
}

func TestProcessRetriesWithBackoffOnFailure(t *testing.T) {
	repo := repository.NewMemoryRepository()
	rec := seedWorkDay(t, repo)
	client := &fakeClient{err: errors.New("payroll down")}
	p := NewProcessor(repo, client)

	retry, delay, err := p.Process(context.Background(), eventMessage(t, rec))
	if err == nil || !retry {
		t.Fatalf("expected retryable failure, got retry=%v err=%v", retry, err)
	}
	if delay != 20 {
		t.Fatalf("expected first-retry delay of 20s, got %d", delay)
	}

	stored, _ := repo.GetWorkDay(context.Background(), rec.ID)
	if stored.PayrollStatus != model.StatusPayrollPending || stored.PayrollRetries != 1 {
		t.Fatalf("expected PENDING with one retry, got %s/%d", stored.PayrollStatus, stored.PayrollRetries)
	}
}

func TestProcessDropsMalformedMessages(t *testing.T) {
	repo := repository.NewMemoryRepository()
	p := NewProcessor(repo, &fakeClient{})

	msg := types.Message{Body: aws.String("{not json"), MessageId: aws.String("m-2")}
	retry, _, err := p.Process(context.Background(), msg)
	if err == nil || retry {
		t.Fatalf("malformed message must fail without retry, got retry=%v err=%v", retry, err)
	}
}

func TestCalculateBackoffCapsAtOneHour(t *testing.T) {
	if got := calculateBackoff(1); got != 20 {
		t.Fatalf("backoff(1) = %d, want 20", got)
	}
	if got := calculateBackoff(3); got != 80 {
		t.Fatalf("backoff(3) = %d, want 80", got)
	}
	if got := calculateBackoff(20); got != 3600 {
		t.Fatalf("backoff(20) = %d, want 3600", got)
	}
}
