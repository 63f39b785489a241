package service

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/worklog/domain"
	"example.com/worklog/internal/cache"
	"example.com/worklog/models"
	"example.com/worklog/repository"
)

// MaxDailyHours is the cap on a member's total recorded hours per date.
const MaxDailyHours = 24.0

// WorkLogService implements the employee-facing work-log use cases:
// daily entries, absences and the cached calendar view.
type WorkLogService struct {
	entries   *repository.WorkLogEntryRepository
	absences  *repository.AbsenceRepository
	approvals *repository.MonthlyApprovalRepository
	periods   periodResolver
	calendar  *cache.CalendarCache
}

// NewWorkLogService creates a new work-log service.
func NewWorkLogService(
	entries *repository.WorkLogEntryRepository,
	absences *repository.AbsenceRepository,
	approvals *repository.MonthlyApprovalRepository,
	patterns *repository.MonthlyPeriodPatternRepository,
	calendar *cache.CalendarCache,
) *WorkLogService {
	return &WorkLogService{
		entries:   entries,
		absences:  absences,
		approvals: approvals,
		periods:   periodResolver{patterns: patterns},
		calendar:  calendar,
	}
}

// CreateEntry records a new DRAFT entry after checking the daily cap, the
// duplicate rule and the approved-month lock.
func (s *WorkLogService) CreateEntry(ctx context.Context, tenantID, memberID, projectID, date string, hours float64, note string) (*domain.WorkLogEntry, error) {
	if err := s.checkMonthUnlocked(ctx, tenantID, memberID, date); err != nil {
		return nil, err
	}
	if err := s.checkDailyCap(ctx, memberID, date, hours, ""); err != nil {
		return nil, err
	}

	exists, err := s.entries.ExistsForMemberProjectDate(ctx, memberID, projectID, date, "")
	if err != nil {
		return nil, errors.Wrap(err, "duplicate check failed")
	}
	if exists {
		return nil, ErrDuplicateEntry
	}

	entry, err := domain.NewWorkLogEntry(uuid.New().String(), tenantID, memberID, projectID, date, hours, note)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to save work-log entry")
	}
	return entry, nil
}

// UpdateEntry changes an existing entry under the same business rules.
func (s *WorkLogService) UpdateEntry(ctx context.Context, id, projectID, date string, hours float64, note string) (*domain.WorkLogEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMonthUnlocked(ctx, entry.State.TenantID, entry.State.MemberID, date); err != nil {
		return nil, err
	}
	if err := s.checkDailyCap(ctx, entry.State.MemberID, date, hours, id); err != nil {
		return nil, err
	}

	if err := entry.Update(projectID, date, hours, note); err != nil {
		return nil, err
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to save work-log entry")
	}
	return entry, nil
}

// ChangeEntryStatus moves an entry through its status machine.
func (s *WorkLogService) ChangeEntryStatus(ctx context.Context, id string, next domain.WorkLogStatus) (*domain.WorkLogEntry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.ChangeStatus(next); err != nil {
		return nil, err
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to save work-log entry")
	}
	return entry, nil
}

// DeleteEntry soft-deletes an entry unless its month is approved.
func (s *WorkLogService) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkMonthUnlocked(ctx, entry.State.TenantID, entry.State.MemberID, entry.State.Date); err != nil {
		return err
	}
	if err := entry.Delete(); err != nil {
		return err
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return errors.Wrap(err, "failed to save work-log entry")
	}
	return nil
}

// GetEntry returns a live entry by id.
func (s *WorkLogService) GetEntry(ctx context.Context, id string) (*domain.WorkLogEntry, error) {
	return s.entries.FindByID(ctx, id)
}

// CreateAbsence records a new absence for a member and date.
func (s *WorkLogService) CreateAbsence(ctx context.Context, tenantID, memberID, date, kind, reason string) (*domain.Absence, error) {
	if err := s.checkMonthUnlocked(ctx, tenantID, memberID, date); err != nil {
		return nil, err
	}

	exists, err := s.absences.ExistsForMemberAndDate(ctx, memberID, date, "")
	if err != nil {
		return nil, errors.Wrap(err, "duplicate check failed")
	}
	if exists {
		return nil, ErrDuplicateAbsence
	}

	absence, err := domain.NewAbsence(uuid.New().String(), tenantID, memberID, date, kind, reason)
	if err != nil {
		return nil, err
	}
	if err := s.absences.Save(ctx, absence); err != nil {
		return nil, errors.Wrap(err, "failed to save absence")
	}
	return absence, nil
}

// UpdateAbsence changes an existing absence.
func (s *WorkLogService) UpdateAbsence(ctx context.Context, id, date, kind, reason string) (*domain.Absence, error) {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMonthUnlocked(ctx, absence.State.TenantID, absence.State.MemberID, date); err != nil {
		return nil, err
	}

	exists, err := s.absences.ExistsForMemberAndDate(ctx, absence.State.MemberID, date, id)
	if err != nil {
		return nil, errors.Wrap(err, "duplicate check failed")
	}
	if exists {
		return nil, ErrDuplicateAbsence
	}

	if err := absence.Update(date, kind, reason); err != nil {
		return nil, err
	}
	if err := s.absences.Save(ctx, absence); err != nil {
		return nil, errors.Wrap(err, "failed to save absence")
	}
	return absence, nil
}

// DeleteAbsence soft-deletes an absence.
func (s *WorkLogService) DeleteAbsence(ctx context.Context, id string) error {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := absence.Delete(); err != nil {
		return err
	}
	if err := s.absences.Save(ctx, absence); err != nil {
		return errors.Wrap(err, "failed to save absence")
	}
	return nil
}

// ListEntries returns a member's projection rows for a date range.
func (s *WorkLogService) ListEntries(ctx context.Context, memberID, from, to string, statuses []string) ([]models.WorkLogEntryProjection, error) {
	return s.entries.ListByMemberAndRange(ctx, memberID, from, to, statuses)
}

// ListAbsences returns a member's absences for a date range.
func (s *WorkLogService) ListAbsences(ctx context.Context, memberID, from, to string) ([]models.AbsenceProjection, error) {
	return s.absences.ListByMemberAndRange(ctx, memberID, from, to)
}

// Calendar returns a member's entries and absences for one calendar
// month, served from the Redis cache when possible.
func (s *WorkLogService) Calendar(ctx context.Context, memberID, yearMonth string) (*cache.CalendarView, error) {
	if view, err := s.calendar.Get(ctx, memberID, yearMonth); err == nil {
		return view, nil
	} else if err != redis.Nil {
		log.Warn().Err(err).Str("memberID", memberID).Msg("Calendar cache read failed")
	}

	from := yearMonth + "-01"
	to := yearMonth + "-31"

	entries, err := s.entries.ListByMemberAndRange(ctx, memberID, from, to, nil)
	if err != nil {
		return nil, err
	}
	absences, err := s.absences.ListByMemberAndRange(ctx, memberID, from, to)
	if err != nil {
		return nil, err
	}

	view := &cache.CalendarView{Entries: entries, Absences: absences}
	if err := s.calendar.Set(ctx, memberID, yearMonth, view); err != nil {
		log.Warn().Err(err).Str("memberID", memberID).Msg("Calendar cache write failed")
	}
	return view, nil
}

func (s *WorkLogService) checkDailyCap(ctx context.Context, memberID, date string, hours float64, excludeID string) error {
	total, err := s.entries.TotalHoursForDate(ctx, memberID, date, excludeID)
	if err != nil {
		return errors.Wrap(err, "daily cap check failed")
	}
	if total+hours > MaxDailyHours {
		return ErrDailyCapExceeded
	}
	return nil
}

func (s *WorkLogService) checkMonthUnlocked(ctx context.Context, tenantID, memberID, date string) error {
	yearMonth, _, _, err := s.periods.resolve(ctx, tenantID, date)
	if err != nil {
		return err
	}

	approval, err := s.approvals.FindByMemberAndMonth(ctx, memberID, yearMonth)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if approval.State.Status == domain.ApprovalStatusApproved {
		return ErrMonthLocked
	}
	return nil
}
