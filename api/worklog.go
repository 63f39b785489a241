package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/worklog/domain"
)

// WorkLogEntryResponse is the API shape of a work-log entry.
type WorkLogEntryResponse struct {
	ID        string  `json:"id"`
	Version   int     `json:"version"`
	TenantID  string  `json:"tenant_id"`
	MemberID  string  `json:"member_id"`
	ProjectID string  `json:"project_id"`
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	Note      string  `json:"note"`
	Status    string  `json:"status"`
}

func entryResponse(entry *domain.WorkLogEntry) WorkLogEntryResponse {
	return WorkLogEntryResponse{
		ID:        entry.AggregateID(),
		Version:   entry.Version(),
		TenantID:  entry.State.TenantID,
		MemberID:  entry.State.MemberID,
		ProjectID: entry.State.ProjectID,
		Date:      entry.State.Date,
		Hours:     entry.State.Hours,
		Note:      entry.State.Note,
		Status:    string(entry.State.Status),
	}
}

// CreateEntryRequest is the request body for creating an entry.
type CreateEntryRequest struct {
	TenantID  string  `json:"tenant_id" binding:"required,uuid"`
	MemberID  string  `json:"member_id" binding:"required,uuid"`
	ProjectID string  `json:"project_id" binding:"required"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	Hours     float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Note      string  `json:"note"`
}

func (s *Server) createEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := s.worklog.CreateEntry(c.Request.Context(), req.TenantID, req.MemberID, req.ProjectID, req.Date, req.Hours, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (s *Server) getEntry(c *gin.Context) {
	entry, err := s.worklog.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

// UpdateEntryRequest is the request body for updating an entry.
type UpdateEntryRequest struct {
	ProjectID string  `json:"project_id" binding:"required"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	Hours     float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Note      string  `json:"note"`
}

func (s *Server) updateEntry(c *gin.Context) {
	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := s.worklog.UpdateEntry(c.Request.Context(), c.Param("id"), req.ProjectID, req.Date, req.Hours, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.worklog.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) submitEntry(c *gin.Context) {
	entry, err := s.worklog.ChangeEntryStatus(c.Request.Context(), c.Param("id"), domain.WorkLogStatusSubmitted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

func (s *Server) recallEntry(c *gin.Context) {
	entry, err := s.worklog.ChangeEntryStatus(c.Request.Context(), c.Param("id"), domain.WorkLogStatusDraft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryResponse(entry))
}

func (s *Server) listEntries(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	rows, err := s.worklog.ListEntries(c.Request.Context(), c.Param("id"), from, to, statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) getCalendar(c *gin.Context) {
	view, err := s.worklog.Calendar(c.Request.Context(), c.Param("id"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AbsenceResponse is the API shape of an absence.
type AbsenceResponse struct {
	ID       string `json:"id"`
	Version  int    `json:"version"`
	TenantID string `json:"tenant_id"`
	MemberID string `json:"member_id"`
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Reason   string `json:"reason"`
}

func absenceResponse(absence *domain.Absence) AbsenceResponse {
	return AbsenceResponse{
		ID:       absence.AggregateID(),
		Version:  absence.Version(),
		TenantID: absence.State.TenantID,
		MemberID: absence.State.MemberID,
		Date:     absence.State.Date,
		Kind:     absence.State.Kind,
		Reason:   absence.State.Reason,
	}
}

// CreateAbsenceRequest is the request body for creating an absence.
type CreateAbsenceRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid"`
	MemberID string `json:"member_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Kind     string `json:"kind" binding:"required"`
	Reason   string `json:"reason"`
}

func (s *Server) createAbsence(c *gin.Context) {
	var req CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	absence, err := s.worklog.CreateAbsence(c.Request.Context(), req.TenantID, req.MemberID, req.Date, req.Kind, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, absenceResponse(absence))
}

// UpdateAbsenceRequest is the request body for updating an absence.
type UpdateAbsenceRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Kind   string `json:"kind" binding:"required"`
	Reason string `json:"reason"`
}

func (s *Server) updateAbsence(c *gin.Context) {
	var req UpdateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	absence, err := s.worklog.UpdateAbsence(c.Request.Context(), c.Param("id"), req.Date, req.Kind, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, absenceResponse(absence))
}

func (s *Server) deleteAbsence(c *gin.Context) {
	if err := s.worklog.DeleteAbsence(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAbsences(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	rows, err := s.worklog.ListAbsences(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
