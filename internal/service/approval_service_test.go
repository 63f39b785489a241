package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/worklog/domain"
	"example.com/worklog/repository"
)

func TestSubmitMonthTransitionsEntries(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	first, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	second, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-11", 6, "")
	require.NoError(t, err)
	outside, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-04-01", 8, "")
	require.NoError(t, err)

	approval, err := f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalStatusSubmitted, approval.State.Status)

	for _, id := range []string{first.AggregateID(), second.AggregateID()} {
		entry, err := f.worklog.GetEntry(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.WorkLogStatusSubmitted, entry.State.Status)
	}

	untouched, err := f.worklog.GetEntry(ctx, outside.AggregateID())
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusDraft, untouched.State.Status)
}

func TestSubmitMonthTwiceRejected(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)

	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestApproveMonth(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)

	approval, err := f.approvals.ApproveMonth(ctx, memberID, "2026-03", "manager-1", "all good")
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalStatusApproved, approval.State.Status)
	require.Equal(t, "manager-1", approval.State.ActorID)

	approved, err := f.worklog.GetEntry(ctx, entry.AggregateID())
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusApproved, approved.State.Status)

	// approving twice is an invalid transition
	_, err = f.approvals.ApproveMonth(ctx, memberID, "2026-03", "manager-1", "")
	require.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestRejectAndResubmitMonth(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)

	approval, err := f.approvals.RejectMonth(ctx, memberID, "2026-03", "manager-1", "fix fridays")
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalStatusRejected, approval.State.Status)
	require.Equal(t, "fix fridays", approval.State.Comment)

	// entries drop back to DRAFT so they can be corrected
	draft, err := f.worklog.GetEntry(ctx, entry.AggregateID())
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusDraft, draft.State.Status)

	_, err = f.worklog.UpdateEntry(ctx, entry.AggregateID(), "project-1", "2026-03-10", 6, "fixed")
	require.NoError(t, err)

	// resubmitting reuses the same aggregate
	resubmitted, err := f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)
	require.Equal(t, approval.AggregateID(), resubmitted.AggregateID())
	require.Equal(t, domain.ApprovalStatusSubmitted, resubmitted.State.Status)
}

func TestGetApprovalMissing(t *testing.T) {
	f := newFixture(t)
	f.seedTenant(t)

	_, err := f.approvals.GetApproval(context.Background(), "member-x", "2026-03")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListApprovals(t *testing.T) {
	f := newFixture(t)
	tenantID, orgID, memberID := f.seedTenant(t)
	ctx := context.Background()

	colleague, err := f.admin.CreateMember(ctx, tenantID, orgID, "Sam", "sam@acme.test", "employee")
	require.NoError(t, err)

	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)
	_, err = f.approvals.SubmitMonth(ctx, tenantID, colleague.AggregateID(), "2026-03")
	require.NoError(t, err)
	_, err = f.approvals.ApproveMonth(ctx, memberID, "2026-03", "manager-1", "")
	require.NoError(t, err)

	rows, err := f.approvals.ListApprovals(ctx, tenantID, "2026-03", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	rows, err = f.approvals.ListApprovals(ctx, tenantID, "2026-03", []string{string(domain.ApprovalStatusSubmitted)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, colleague.AggregateID(), rows[0].AggregateID)
}
