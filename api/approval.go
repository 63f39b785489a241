package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/worklog/domain"
)

// ApprovalResponse is the API shape of a monthly approval.
type ApprovalResponse struct {
	ID        string `json:"id"`
	Version   int    `json:"version"`
	TenantID  string `json:"tenant_id"`
	MemberID  string `json:"member_id"`
	YearMonth string `json:"year_month"`
	Status    string `json:"status"`
	ActorID   string `json:"actor_id,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

func approvalResponse(approval *domain.MonthlyApproval) ApprovalResponse {
	return ApprovalResponse{
		ID:        approval.AggregateID(),
		Version:   approval.Version(),
		TenantID:  approval.State.TenantID,
		MemberID:  approval.State.MemberID,
		YearMonth: approval.State.YearMonth,
		Status:    string(approval.State.Status),
		ActorID:   approval.State.ActorID,
		Comment:   approval.State.Comment,
	}
}

// SubmitMonthRequest is the request body for submitting a month.
type SubmitMonthRequest struct {
	TenantID  string `json:"tenant_id" binding:"required,uuid"`
	MemberID  string `json:"member_id" binding:"required,uuid"`
	YearMonth string `json:"year_month" binding:"required,yearmonth"`
}

func (s *Server) submitMonth(c *gin.Context) {
	var req SubmitMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := s.approvals.SubmitMonth(c.Request.Context(), req.TenantID, req.MemberID, req.YearMonth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, approvalResponse(approval))
}

// ReviewRequest is the request body for approving or rejecting a month.
type ReviewRequest struct {
	ActorID string `json:"actor_id" binding:"required,uuid"`
	Comment string `json:"comment"`
}

func (s *Server) approveMonth(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := s.approvals.ApproveMonth(c.Request.Context(), c.Param("id"), c.Param("month"), req.ActorID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvalResponse(approval))
}

func (s *Server) rejectMonth(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := s.approvals.RejectMonth(c.Request.Context(), c.Param("id"), c.Param("month"), req.ActorID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvalResponse(approval))
}

func (s *Server) getApproval(c *gin.Context) {
	approval, err := s.approvals.GetApproval(c.Request.Context(), c.Param("id"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvalResponse(approval))
}

func (s *Server) listApprovals(c *gin.Context) {
	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	rows, err := s.approvals.ListApprovals(c.Request.Context(), c.Param("id"), c.Param("month"), statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
