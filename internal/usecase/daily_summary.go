package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// DailySummaryUseCase mails the admin a breakdown of today's leads.
// Triggered by the scheduler, failures are logged by the caller.
type DailySummaryUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Email EmailService
}

func NewDailySummaryUseCase(repo entity.LeadRepositoryInterface, email EmailService) *DailySummaryUseCase {
	return &DailySummaryUseCase{Repo: repo, Email: email}
}

func (uc *DailySummaryUseCase) Execute(ctx context.Context) (SummaryData, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	leads, err := uc.Repo.FindAll(ctx, entity.LeadFilter{DateFrom: today, DateTo: tomorrow})
	if err != nil {
		return SummaryData{}, fmt.Errorf("failed to load today's leads: %w", err)
	}

	summary := SummaryData{Date: today, Total: len(leads), BySource: map[string]int{}}
	for _, lead := range leads {
		switch lead.Status {
		case entity.StatusNew:
			summary.New++
		case entity.StatusConverted:
			summary.Converted++
		}
		summary.BySource[lead.Source]++
	}

	if uc.Email != nil {
		if err := uc.Email.SendDailySummary(summary); err != nil {
			return summary, fmt.Errorf("failed to send daily summary: %w", err)
		}
	}

	return summary, nil
}
