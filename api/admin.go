package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/worklog/domain"
)

// TenantRequest is the request body for creating or updating a tenant.
type TenantRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (s *Server) createTenant(c *gin.Context) {
	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := s.admin.CreateTenant(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      tenant.AggregateID(),
		"version": tenant.Version(),
		"name":    tenant.State.Name,
		"code":    tenant.State.Code,
	})
}

func (s *Server) updateTenant(c *gin.Context) {
	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenant, err := s.admin.UpdateTenant(c.Request.Context(), c.Param("id"), req.Name, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      tenant.AggregateID(),
		"version": tenant.Version(),
		"name":    tenant.State.Name,
		"code":    tenant.State.Code,
	})
}

func (s *Server) deleteTenant(c *gin.Context) {
	if err := s.admin.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listTenants(c *gin.Context) {
	rows, err := s.admin.ListTenants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// OrganizationRequest is the request body for creating or updating an
// organization.
type OrganizationRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func organizationBody(org *domain.Organization) gin.H {
	return gin.H{
		"id":        org.AggregateID(),
		"version":   org.Version(),
		"tenant_id": org.State.TenantID,
		"name":      org.State.Name,
		"code":      org.State.Code,
	}
}

func (s *Server) createOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := s.admin.CreateOrganization(c.Request.Context(), c.Param("id"), req.Name, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, organizationBody(org))
}

func (s *Server) updateOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := s.admin.UpdateOrganization(c.Request.Context(), c.Param("id"), req.Name, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, organizationBody(org))
}

func (s *Server) deleteOrganization(c *gin.Context) {
	if err := s.admin.DeleteOrganization(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listOrganizations(c *gin.Context) {
	rows, err := s.admin.ListOrganizations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MemberRequest is the request body for creating or updating a member.
type MemberRequest struct {
	TenantID       string `json:"tenant_id" binding:"required,uuid"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Role           string `json:"role" binding:"required"`
}

func memberBody(member *domain.Member) gin.H {
	return gin.H{
		"id":              member.AggregateID(),
		"version":         member.Version(),
		"tenant_id":       member.State.TenantID,
		"organization_id": member.State.OrganizationID,
		"name":            member.State.Name,
		"email":           member.State.Email,
		"role":            member.State.Role,
	}
}

func (s *Server) createMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := s.admin.CreateMember(c.Request.Context(), req.TenantID, c.Param("id"), req.Name, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, memberBody(member))
}

func (s *Server) updateMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := s.admin.UpdateMember(c.Request.Context(), c.Param("id"), req.OrganizationID, req.Name, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberBody(member))
}

func (s *Server) deleteMember(c *gin.Context) {
	if err := s.admin.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listMembers(c *gin.Context) {
	rows, err := s.admin.ListMembers(c.Request.Context(), c.Param("id"), c.Query("organization_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// PatternRequest is the request body for creating or updating a period
// pattern.
type PatternRequest struct {
	Name     string `json:"name" binding:"required"`
	StartDay int    `json:"start_day" binding:"required,min=1,max=28"`
}

func patternBody(pattern *domain.MonthlyPeriodPattern) gin.H {
	return gin.H{
		"id":        pattern.AggregateID(),
		"version":   pattern.Version(),
		"tenant_id": pattern.State.TenantID,
		"name":      pattern.State.Name,
		"start_day": pattern.State.StartDay,
	}
}

func (s *Server) createPattern(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern, err := s.admin.CreatePattern(c.Request.Context(), c.Param("id"), req.Name, req.StartDay)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patternBody(pattern))
}

func (s *Server) updatePattern(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern, err := s.admin.UpdatePattern(c.Request.Context(), c.Param("id"), req.Name, req.StartDay)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patternBody(pattern))
}

func (s *Server) deletePattern(c *gin.Context) {
	if err := s.admin.DeletePattern(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
