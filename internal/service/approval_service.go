package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"example.com/worklog/domain"
	"example.com/worklog/models"
	"example.com/worklog/repository"
)

// ApprovalService implements the monthly submit/approve/reject flow.
// Submitting a month also moves that period's DRAFT entries to SUBMITTED;
// approving moves SUBMITTED entries to APPROVED.
type ApprovalService struct {
	approvals *repository.MonthlyApprovalRepository
	entries   *repository.WorkLogEntryRepository
	periods   periodResolver
}

// NewApprovalService creates a new approval service.
func NewApprovalService(
	approvals *repository.MonthlyApprovalRepository,
	entries *repository.WorkLogEntryRepository,
	patterns *repository.MonthlyPeriodPatternRepository,
) *ApprovalService {
	return &ApprovalService{
		approvals: approvals,
		entries:   entries,
		periods:   periodResolver{patterns: patterns},
	}
}

// SubmitMonth submits a member's fiscal month for approval, creating the
// approval aggregate or resubmitting a rejected one.
func (s *ApprovalService) SubmitMonth(ctx context.Context, tenantID, memberID, yearMonth string) (*domain.MonthlyApproval, error) {
	approval, err := s.approvals.FindByMemberAndMonth(ctx, memberID, yearMonth)
	switch {
	case err == nil:
		if approval.State.Status != domain.ApprovalStatusRejected {
			return nil, ErrAlreadySubmitted
		}
		if err := approval.Resubmit(memberID); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		approval, err = domain.NewMonthlyApproval(uuid.New().String(), tenantID, memberID, yearMonth)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.approvals.Save(ctx, approval); err != nil {
		return nil, errors.Wrap(err, "failed to save approval")
	}

	if err := s.transitionEntries(ctx, tenantID, memberID, yearMonth, domain.WorkLogStatusDraft, domain.WorkLogStatusSubmitted); err != nil {
		return nil, err
	}
	return approval, nil
}

// ApproveMonth approves a submitted month and locks its entries.
func (s *ApprovalService) ApproveMonth(ctx context.Context, memberID, yearMonth, actorID, comment string) (*domain.MonthlyApproval, error) {
	approval, err := s.approvals.FindByMemberAndMonth(ctx, memberID, yearMonth)
	if err != nil {
		return nil, err
	}
	if err := approval.Approve(actorID, comment); err != nil {
		return nil, err
	}
	if err := s.approvals.Save(ctx, approval); err != nil {
		return nil, errors.Wrap(err, "failed to save approval")
	}

	if err := s.transitionEntries(ctx, approval.State.TenantID, memberID, yearMonth, domain.WorkLogStatusSubmitted, domain.WorkLogStatusApproved); err != nil {
		return nil, err
	}
	return approval, nil
}

// RejectMonth rejects a submitted month; the member's entries go back to
// DRAFT so they can be corrected and resubmitted.
func (s *ApprovalService) RejectMonth(ctx context.Context, memberID, yearMonth, actorID, comment string) (*domain.MonthlyApproval, error) {
	approval, err := s.approvals.FindByMemberAndMonth(ctx, memberID, yearMonth)
	if err != nil {
		return nil, err
	}
	if err := approval.Reject(actorID, comment); err != nil {
		return nil, err
	}
	if err := s.approvals.Save(ctx, approval); err != nil {
		return nil, errors.Wrap(err, "failed to save approval")
	}

	if err := s.transitionEntries(ctx, approval.State.TenantID, memberID, yearMonth, domain.WorkLogStatusSubmitted, domain.WorkLogStatusDraft); err != nil {
		return nil, err
	}
	return approval, nil
}

// GetApproval returns a member's approval for a fiscal month.
func (s *ApprovalService) GetApproval(ctx context.Context, memberID, yearMonth string) (*domain.MonthlyApproval, error) {
	return s.approvals.FindByMemberAndMonth(ctx, memberID, yearMonth)
}

// ListApprovals returns all approvals in a tenant for one fiscal month.
func (s *ApprovalService) ListApprovals(ctx context.Context, tenantID, yearMonth string, statuses []string) ([]models.MonthlyApprovalProjection, error) {
	return s.approvals.ListByTenantAndMonth(ctx, tenantID, yearMonth, statuses)
}

func (s *ApprovalService) transitionEntries(ctx context.Context, tenantID, memberID, yearMonth string, from, to domain.WorkLogStatus) error {
	fromDate, toDate, err := s.periods.boundsForMonth(ctx, tenantID, yearMonth)
	if err != nil {
		return err
	}

	rows, err := s.entries.ListByMemberAndRange(ctx, memberID, fromDate, toDate, []string{string(from)})
	if err != nil {
		return err
	}

	for _, row := range rows {
		entry, err := s.entries.FindByID(ctx, row.AggregateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return err
		}
		if err := entry.ChangeStatus(to); err != nil {
			return err
		}
		if err := s.entries.Save(ctx, entry); err != nil {
			return errors.Wrapf(err, "failed to move entry %s to %s", row.AggregateID, to)
		}
	}
	return nil
}
