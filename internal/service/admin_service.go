package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"example.com/worklog/domain"
	"example.com/worklog/models"
	"example.com/worklog/repository"
)

// AdminService implements tenant, organization, member and period
// pattern administration.
type AdminService struct {
	tenants  *repository.TenantRepository
	orgs     *repository.OrganizationRepository
	members  *repository.MemberRepository
	patterns *repository.MonthlyPeriodPatternRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	tenants *repository.TenantRepository,
	orgs *repository.OrganizationRepository,
	members *repository.MemberRepository,
	patterns *repository.MonthlyPeriodPatternRepository,
) *AdminService {
	return &AdminService{
		tenants:  tenants,
		orgs:     orgs,
		members:  members,
		patterns: patterns,
	}
}

// CreateTenant provisions a new tenant.
func (s *AdminService) CreateTenant(ctx context.Context, name, code string) (*domain.Tenant, error) {
	tenant, err := domain.NewTenant(uuid.New().String(), name, code)
	if err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, errors.Wrap(err, "failed to save tenant")
	}
	return tenant, nil
}

// UpdateTenant renames a tenant.
func (s *AdminService) UpdateTenant(ctx context.Context, id, name, code string) (*domain.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.Update(name, code); err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, errors.Wrap(err, "failed to save tenant")
	}
	return tenant, nil
}

// DeleteTenant soft-deletes a tenant.
func (s *AdminService) DeleteTenant(ctx context.Context, id string) error {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := tenant.Delete(); err != nil {
		return err
	}
	return s.tenants.Save(ctx, tenant)
}

// ListTenants returns all live tenants.
func (s *AdminService) ListTenants(ctx context.Context) ([]models.TenantProjection, error) {
	return s.tenants.List(ctx)
}

// CreateOrganization adds an organization to an existing tenant.
func (s *AdminService) CreateOrganization(ctx context.Context, tenantID, name, code string) (*domain.Organization, error) {
	if _, err := s.tenants.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	org, err := domain.NewOrganization(uuid.New().String(), tenantID, name, code)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.Save(ctx, org); err != nil {
		return nil, errors.Wrap(err, "failed to save organization")
	}
	return org, nil
}

// UpdateOrganization renames an organization.
func (s *AdminService) UpdateOrganization(ctx context.Context, id, name, code string) (*domain.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := org.Update(name, code); err != nil {
		return nil, err
	}
	if err := s.orgs.Save(ctx, org); err != nil {
		return nil, errors.Wrap(err, "failed to save organization")
	}
	return org, nil
}

// DeleteOrganization soft-deletes an organization.
func (s *AdminService) DeleteOrganization(ctx context.Context, id string) error {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := org.Delete(); err != nil {
		return err
	}
	return s.orgs.Save(ctx, org)
}

// ListOrganizations returns all live organizations in a tenant.
func (s *AdminService) ListOrganizations(ctx context.Context, tenantID string) ([]models.OrganizationProjection, error) {
	return s.orgs.ListByTenant(ctx, tenantID)
}

// CreateMember adds a member to an existing organization.
func (s *AdminService) CreateMember(ctx context.Context, tenantID, organizationID, name, email, role string) (*domain.Member, error) {
	org, err := s.orgs.FindByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org.State.TenantID != tenantID {
		return nil, errors.Errorf("organization %s does not belong to tenant %s", organizationID, tenantID)
	}

	member, err := domain.NewMember(uuid.New().String(), tenantID, organizationID, name, email, role)
	if err != nil {
		return nil, err
	}
	if err := s.members.Save(ctx, member); err != nil {
		return nil, errors.Wrap(err, "failed to save member")
	}
	return member, nil
}

// UpdateMember changes a member's profile or organization.
func (s *AdminService) UpdateMember(ctx context.Context, id, organizationID, name, email, role string) (*domain.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if organizationID != member.State.OrganizationID {
		if _, err := s.orgs.FindByID(ctx, organizationID); err != nil {
			return nil, err
		}
	}
	if err := member.Update(organizationID, name, email, role); err != nil {
		return nil, err
	}
	if err := s.members.Save(ctx, member); err != nil {
		return nil, errors.Wrap(err, "failed to save member")
	}
	return member, nil
}

// DeleteMember soft-deletes a member.
func (s *AdminService) DeleteMember(ctx context.Context, id string) error {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := member.Delete(); err != nil {
		return err
	}
	return s.members.Save(ctx, member)
}

// ListMembers returns a tenant's live members, optionally restricted to
// one organization.
func (s *AdminService) ListMembers(ctx context.Context, tenantID, organizationID string) ([]models.MemberProjection, error) {
	return s.members.ListByTenant(ctx, tenantID, organizationID)
}

// CreatePattern sets a tenant's fiscal-month pattern.
func (s *AdminService) CreatePattern(ctx context.Context, tenantID, name string, startDay int) (*domain.MonthlyPeriodPattern, error) {
	if _, err := s.tenants.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	pattern, err := domain.NewMonthlyPeriodPattern(uuid.New().String(), tenantID, name, startDay)
	if err != nil {
		return nil, err
	}
	if err := s.patterns.Save(ctx, pattern); err != nil {
		return nil, errors.Wrap(err, "failed to save period pattern")
	}
	return pattern, nil
}

// UpdatePattern changes a tenant's fiscal-month pattern.
func (s *AdminService) UpdatePattern(ctx context.Context, id, name string, startDay int) (*domain.MonthlyPeriodPattern, error) {
	pattern, err := s.patterns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pattern.Update(name, startDay); err != nil {
		return nil, err
	}
	if err := s.patterns.Save(ctx, pattern); err != nil {
		return nil, errors.Wrap(err, "failed to save period pattern")
	}
	return pattern, nil
}

// DeletePattern soft-deletes a tenant's fiscal-month pattern.
func (s *AdminService) DeletePattern(ctx context.Context, id string) error {
	pattern, err := s.patterns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pattern.Delete(); err != nil {
		return err
	}
	return s.patterns.Save(ctx, pattern)
}
