package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// VisitorHandler handles HTTP requests for visitor logging.
type VisitorHandler struct {
	service ports.VisitorService
}

func NewVisitorHandler(service ports.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

type createVisitorRequest struct {
	VisitorName  string `json:"visitor_name"  validate:"required"`
	VisitorPhone string `json:"visitor_phone" validate:"required"`
	FlatNumber   string `json:"flat_number"`
	ResidentID   string `json:"resident_id"`
	Purpose      string `json:"purpose"`
}

type visitorResponse struct {
	ID           string              `json:"id"`
	VisitorName  string              `json:"visitor_name"`
	VisitorPhone string              `json:"visitor_phone"`
	FlatNumber   string              `json:"flat_number"`
	ResidentID   string              `json:"resident_id,omitempty"`
	Purpose      string              `json:"purpose,omitempty"`
	Status       string              `json:"status"`
	CheckInTime  time.Time           `json:"check_in_time"`
	CheckOutTime *time.Time          `json:"check_out_time,omitempty"`
	Resident     *profileRefResponse `json:"resident,omitempty"`
}

type listVisitorsResponse struct {
	Data []visitorResponse `json:"data"`
}

// Create handles POST /v1/visitors — logs a visitor at the gate.
//
// @Summary      Log a visitor
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVisitorRequest  true  "Visitor details"
// @Success      201   {object}  visitorResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/visitors [post]
func (h *VisitorHandler) Create(c echo.Context) error {
	var req createVisitorRequest
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

	visitor, err := h.service.Create(c.Request().Context(), actor, ports.CreateVisitorInput{
		VisitorName:  req.VisitorName,
		VisitorPhone: req.VisitorPhone,
		FlatNumber:   req.FlatNumber,
		ResidentID:   req.ResidentID,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toVisitorResponse(visitor, nil))
}

// List handles GET /v1/visitors?status=.
//
// @Summary      List visitor entries
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, approved, rejected, checked_out)
// @Success      200     {object}  listVisitorsResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), actor, domain.VisitorStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}

	data := make([]visitorResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toVisitorResponse(&item.Visitor, item.Resident))
	}
	return c.JSON(http.StatusOK, listVisitorsResponse{Data: data})
}

// Approve handles POST /v1/visitors/:id/approve.
//
// @Summary      Approve a pending visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Visitor id"
// @Success      200  {object}  visitorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/visitors/{id}/approve [post]
func (h *VisitorHandler) Approve(c echo.Context) error {
	return h.transition(c, ports.VisitorService.Approve)
}

// Reject handles POST /v1/visitors/:id/reject.
//
// @Summary      Reject a pending visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Visitor id"
// @Success      200  {object}  visitorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/visitors/{id}/reject [post]
func (h *VisitorHandler) Reject(c echo.Context) error {
	return h.transition(c, ports.VisitorService.Reject)
}

// CheckOut handles POST /v1/visitors/:id/checkout.
//
// @Summary      Check out an approved visitor
// @Tags         visitors
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Visitor id"
// @Success      200  {object}  visitorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/visitors/{id}/checkout [post]
func (h *VisitorHandler) CheckOut(c echo.Context) error {
	return h.transition(c, ports.VisitorService.CheckOut)
}

func (h *VisitorHandler) transition(
	c echo.Context,
	op func(ports.VisitorService, context.Context, domain.Actor, string) (*domain.Visitor, error),
) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	visitor, err := op(h.service, c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toVisitorResponse(visitor, nil))
}

func toVisitorResponse(v *domain.Visitor, resident *ports.ProfileRef) visitorResponse {
	resp := visitorResponse{
		ID:           v.ID,
		VisitorName:  v.VisitorName,
		VisitorPhone: v.VisitorPhone,
		FlatNumber:   v.FlatNumber,
		ResidentID:   v.ResidentID,
		Purpose:      v.Purpose,
		Status:       string(v.Status),
		CheckInTime:  v.CheckInTime,
		CheckOutTime: v.CheckOutTime,
	}
	if resident != nil {
		resp.Resident = &profileRefResponse{ID: resident.ID, FullName: resident.FullName, FlatNumber: resident.FlatNumber}
	}
	return resp
}
