package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"example.com/worklog/repository"
)

// DateLayout is the wire format for dates throughout the service.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for fiscal-month keys.
const MonthLayout = "2006-01"

// periodResolver maps a calendar date onto a tenant's fiscal month using
// its MonthlyPeriodPattern, falling back to calendar months for tenants
// without one.
type periodResolver struct {
	patterns *repository.MonthlyPeriodPatternRepository
}

// resolve returns the fiscal-month key and inclusive date bounds that
// contain the given date.
func (p periodResolver) resolve(ctx context.Context, tenantID, date string) (string, string, string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid date %q: %w", date, err)
	}

	pattern, err := p.patterns.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, -1)
			return start.Format(MonthLayout), start.Format(DateLayout), end.Format(DateLayout), nil
		}
		return "", "", "", err
	}

	start, end := pattern.PeriodFor(day)
	return start.Format(MonthLayout), start.Format(DateLayout), end.Format(DateLayout), nil
}

// boundsForMonth returns the inclusive date bounds of a fiscal month
// addressed by its key.
func (p periodResolver) boundsForMonth(ctx context.Context, tenantID, yearMonth string) (string, string, error) {
	start, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", yearMonth, err)
	}

	pattern, err := p.patterns.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return start.Format(DateLayout), start.AddDate(0, 1, -1).Format(DateLayout), nil
		}
		return "", "", err
	}

	from := time.Date(start.Year(), start.Month(), pattern.State.StartDay, 0, 0, 0, 0, time.UTC)
	return from.Format(DateLayout), from.AddDate(0, 1, -1).Format(DateLayout), nil
}
