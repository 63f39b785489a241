package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/worklog/config"
	"example.com/worklog/domain"
	"example.com/worklog/internal/cache"
	"example.com/worklog/models"
	"example.com/worklog/repository"
)

type fixture struct {
	db        *gorm.DB
	worklog   *WorkLogService
	approvals *ApprovalService
	admin     *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	hooks := repository.NewHookRunner()
	entries := repository.NewWorkLogEntryRepository(db, hooks)
	absences := repository.NewAbsenceRepository(db, hooks)
	approvals := repository.NewMonthlyApprovalRepository(db, hooks)
	tenants := repository.NewTenantRepository(db, hooks)
	orgs := repository.NewOrganizationRepository(db, hooks)
	members := repository.NewMemberRepository(db, hooks)
	patterns := repository.NewMonthlyPeriodPatternRepository(db, hooks)

	calendar, err := cache.NewCalendarCache(config.Config{RedisEnabled: false})
	require.NoError(t, err)

	return &fixture{
		db:        db,
		worklog:   NewWorkLogService(entries, absences, approvals, patterns, calendar),
		approvals: NewApprovalService(approvals, entries, patterns),
		admin:     NewAdminService(tenants, orgs, members, patterns),
	}
}

// seedTenant provisions a tenant, one organization and one member, and
// returns their ids.
func (f *fixture) seedTenant(t *testing.T) (string, string, string) {
	t.Helper()
	ctx := context.Background()

	tenant, err := f.admin.CreateTenant(ctx, "Acme", "acme")
	require.NoError(t, err)
	org, err := f.admin.CreateOrganization(ctx, tenant.AggregateID(), "Engineering", "eng")
	require.NoError(t, err)
	member, err := f.admin.CreateMember(ctx, tenant.AggregateID(), org.AggregateID(), "Dana", "dana@acme.test", "employee")
	require.NoError(t, err)

	return tenant.AggregateID(), org.AggregateID(), member.AggregateID()
}

func TestCreateEntry(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 7.5, "api work")
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusDraft, entry.State.Status)
	require.Equal(t, 1, entry.Version())
}

func TestCreateEntryDailyCap(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 20, "")
	require.NoError(t, err)

	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-10", 5, "")
	require.ErrorIs(t, err, ErrDailyCapExceeded)

	// exactly at the cap is allowed
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-10", 4, "")
	require.NoError(t, err)
}

func TestUpdateEntryDailyCapExcludesSelf(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 20, "")
	require.NoError(t, err)

	// growing the same entry within the cap is fine
	updated, err := f.worklog.UpdateEntry(ctx, entry.AggregateID(), "project-1", "2026-03-10", 24, "")
	require.NoError(t, err)
	require.Equal(t, 24.0, updated.State.Hours)

	_, err = f.worklog.UpdateEntry(ctx, entry.AggregateID(), "project-1", "2026-03-10", 25, "")
	require.ErrorIs(t, err, ErrDailyCapExceeded)
}

func TestCreateEntryDuplicate(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 4, "")
	require.NoError(t, err)

	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 2, "")
	require.ErrorIs(t, err, ErrDuplicateEntry)

	// same project on another date is fine
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-11", 2, "")
	require.NoError(t, err)
}

func TestEntrySubmitRecallFlow(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	submitted, err := f.worklog.ChangeEntryStatus(ctx, entry.AggregateID(), domain.WorkLogStatusSubmitted)
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusSubmitted, submitted.State.Status)

	recalled, err := f.worklog.ChangeEntryStatus(ctx, entry.AggregateID(), domain.WorkLogStatusDraft)
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogStatusDraft, recalled.State.Status)
	require.Equal(t, 3, recalled.Version())
}

func TestDeleteEntry(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	require.NoError(t, f.worklog.DeleteEntry(ctx, entry.AggregateID()))

	_, err = f.worklog.GetEntry(ctx, entry.AggregateID())
	require.ErrorIs(t, err, repository.ErrNotFound)

	// the slot is free again
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
}

func TestMonthLockBlocksWrites(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	entry, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-03")
	require.NoError(t, err)
	_, err = f.approvals.ApproveMonth(ctx, memberID, "2026-03", "manager-1", "ok")
	require.NoError(t, err)

	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-15", 4, "")
	require.ErrorIs(t, err, ErrMonthLocked)
	_, err = f.worklog.UpdateEntry(ctx, entry.AggregateID(), "project-1", "2026-03-10", 4, "")
	require.ErrorIs(t, err, ErrMonthLocked)
	require.ErrorIs(t, f.worklog.DeleteEntry(ctx, entry.AggregateID()), ErrMonthLocked)
	_, err = f.worklog.CreateAbsence(ctx, tenantID, memberID, "2026-03-20", "SICK", "")
	require.ErrorIs(t, err, ErrMonthLocked)

	// a neighboring month is unaffected
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-04-01", 8, "")
	require.NoError(t, err)
}

func TestAbsenceDuplicate(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.worklog.CreateAbsence(ctx, tenantID, memberID, "2026-03-10", "SICK", "flu")
	require.NoError(t, err)

	_, err = f.worklog.CreateAbsence(ctx, tenantID, memberID, "2026-03-10", "VACATION", "")
	require.ErrorIs(t, err, ErrDuplicateAbsence)
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)
	_, err = f.worklog.CreateAbsence(ctx, tenantID, memberID, "2026-03-11", "SICK", "")
	require.NoError(t, err)
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-04-02", 8, "")
	require.NoError(t, err)

	view, err := f.worklog.Calendar(ctx, memberID, "2026-03")
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	require.Len(t, view.Absences, 1)
}

func TestPeriodResolverFallsBackToCalendarMonths(t *testing.T) {
	f := newFixture(t)
	tenantID, _, _ := f.seedTenant(t)
	resolver := periodResolver{patterns: repositoryPatterns(f)}

	yearMonth, from, to, err := resolver.resolve(context.Background(), tenantID, "2026-03-10")
	require.NoError(t, err)
	require.Equal(t, "2026-03", yearMonth)
	require.Equal(t, "2026-03-01", from)
	require.Equal(t, "2026-03-31", to)
}

func TestPeriodResolverUsesTenantPattern(t *testing.T) {
	f := newFixture(t)
	tenantID, _, _ := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.admin.CreatePattern(ctx, tenantID, "21st to 20th", 21)
	require.NoError(t, err)
	resolver := periodResolver{patterns: repositoryPatterns(f)}

	// the 10th of March belongs to the period that started Feb 21st
	yearMonth, from, to, err := resolver.resolve(ctx, tenantID, "2026-03-10")
	require.NoError(t, err)
	require.Equal(t, "2026-02", yearMonth)
	require.Equal(t, "2026-02-21", from)
	require.Equal(t, "2026-03-20", to)

	from, to, err = resolver.boundsForMonth(ctx, tenantID, "2026-02")
	require.NoError(t, err)
	require.Equal(t, "2026-02-21", from)
	require.Equal(t, "2026-03-20", to)
}

func repositoryPatterns(f *fixture) *repository.MonthlyPeriodPatternRepository {
	return repository.NewMonthlyPeriodPatternRepository(f.db, repository.NewHookRunner())
}

func TestMonthLockWithFiscalPattern(t *testing.T) {
	f := newFixture(t)
	tenantID, _, memberID := f.seedTenant(t)
	ctx := context.Background()

	_, err := f.admin.CreatePattern(ctx, tenantID, "21st to 20th", 21)
	require.NoError(t, err)

	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-1", "2026-03-10", 8, "")
	require.NoError(t, err)

	// 2026-03-10 falls in fiscal month 2026-02
	_, err = f.approvals.SubmitMonth(ctx, tenantID, memberID, "2026-02")
	require.NoError(t, err)
	_, err = f.approvals.ApproveMonth(ctx, memberID, "2026-02", "manager-1", "")
	require.NoError(t, err)

	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-15", 4, "")
	require.ErrorIs(t, err, ErrMonthLocked)

	// the 21st opens the next fiscal month
	_, err = f.worklog.CreateEntry(ctx, tenantID, memberID, "project-2", "2026-03-21", 4, "")
	require.NoError(t, err)
}
