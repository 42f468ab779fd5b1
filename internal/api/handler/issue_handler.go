package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// IssueHandler handles HTTP requests for issue reporting.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

type createIssueRequest struct {
	Category    string `json:"category"    validate:"required,oneof=maintenance security housekeeping"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	IsSOS       bool   `json:"is_sos"`
}

type updateIssueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}

type setSOSRequest struct {
	SOS bool `json:"sos"`
}

type issueResponse struct {
	ID          string              `json:"id"`
	ReportedBy  string              `json:"reported_by"`
	Category    string              `json:"category"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	IsSOS       bool                `json:"is_sos"`
	AssignedTo  string              `json:"assigned_to,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Reporter    *profileRefResponse `json:"reporter,omitempty"`
	Assignee    *profileRefResponse `json:"assignee,omitempty"`
}

type listIssuesResponse struct {
	Data []issueResponse `json:"data"`
}

// Create handles POST /v1/issues — any authenticated actor may report.
//
// @Summary      Report an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIssueRequest  true  "Issue details"
// @Success      201   {object}  issueResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Create(c.Request().Context(), actor, ports.CreateIssueInput{
		Category:    domain.IssueCategory(req.Category),
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.IssuePriority(req.Priority),
		IsSOS:       req.IsSOS,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toIssueResponse(issue, nil, nil))
}

// List handles GET /v1/issues?status=&category=.
//
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"    Enums(open, in_progress, resolved)
// @Param        category  query     string  false  "Filter by category"  Enums(maintenance, security, housekeeping)
// @Success      200       {object}  listIssuesResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), ports.IssueFilter{
		Status:   domain.IssueStatus(c.QueryParam("status")),
		Category: domain.IssueCategory(c.QueryParam("category")),
	})
	if err != nil {
		return err
	}

	data := make([]issueResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toIssueResponse(&item.Issue, item.Reporter, item.Assignee))
	}
	return c.JSON(http.StatusOK, listIssuesResponse{Data: data})
}

// UpdateStatus handles PATCH /v1/issues/:id/status. Admin only.
//
// @Summary      Update issue status
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Issue id"
// @Param        body  body      updateIssueStatusRequest  true  "Target status"
// @Success      200   {object}  issueResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/issues/{id}/status [patch]
func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	var req updateIssueStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Transition(c.Request().Context(), actor, c.Param("id"), domain.IssueStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponse(issue, nil, nil))
}

// SetSOS handles PATCH /v1/issues/:id/sos. Admin only; frozen once resolved.
//
// @Summary      Toggle the SOS flag
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Issue id"
// @Param        body  body      setSOSRequest  true  "SOS flag"
// @Success      200   {object}  issueResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/issues/{id}/sos [patch]
func (h *IssueHandler) SetSOS(c echo.Context) error {
	var req setSOSRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	issue, err := h.service.SetSOS(c.Request().Context(), actor, c.Param("id"), req.SOS)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponse(issue, nil, nil))
}

func toIssueResponse(i *domain.Issue, reporter, assignee *ports.ProfileRef) issueResponse {
	resp := issueResponse{
		ID:          i.ID,
		ReportedBy:  i.ReportedBy,
		Category:    string(i.Category),
		Title:       i.Title,
		Description: i.Description,
		Status:      string(i.Status),
		Priority:    string(i.Priority),
		IsSOS:       i.IsSOS,
		AssignedTo:  i.AssignedTo,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	if reporter != nil {
		resp.Reporter = &profileRefResponse{ID: reporter.ID, FullName: reporter.FullName, FlatNumber: reporter.FlatNumber}
	}
	if assignee != nil {
		resp.Assignee = &profileRefResponse{ID: assignee.ID, FullName: assignee.FullName, FlatNumber: assignee.FlatNumber}
	}
	return resp
}
