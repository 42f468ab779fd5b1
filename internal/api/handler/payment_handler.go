package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// PaymentHandler handles HTTP requests for maintenance dues.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	ResidentID  string    `json:"resident_id"`
	Amount      float64   `json:"amount"       validate:"gte=0"`
	Description string    `json:"description"  validate:"required"`
	DueDate     time.Time `json:"due_date"     validate:"required"`
	ApplyToAll  bool      `json:"apply_to_all"`
}

type payRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

type paymentResponse struct {
	ID            string              `json:"id"`
	ResidentID    string              `json:"resident_id"`
	Amount        float64             `json:"amount"`
	Description   string              `json:"description"`
	DueDate       time.Time           `json:"due_date"`
	Status        string              `json:"status"`
	TransactionID string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	VerifiedBy    string              `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time          `json:"verified_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	Overdue       bool                `json:"overdue"`
	Resident      *profileRefResponse `json:"resident,omitempty"`
}

type createPaymentsResponse struct {
	Data  []paymentResponse `json:"data"`
	Count int               `json:"count"`
}

type listPaymentsResponse struct {
	Data []paymentResponse `json:"data"`
}

// Create handles POST /v1/payments — raises a due for one resident or, with
// apply_to_all, one per resident (all-or-nothing). Admin only.
//
// @Summary      Create payment due(s)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  createPaymentsResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
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

	created, err := h.service.Create(c.Request().Context(), actor, ports.CreatePaymentInput{
		ResidentID:  req.ResidentID,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
		ApplyToAll:  req.ApplyToAll,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	data := make([]paymentResponse, 0, len(created))
	for _, p := range created {
		data = append(data, toPaymentResponse(p, nil, p.IsOverdue(now)))
	}
	return c.JSON(http.StatusCreated, createPaymentsResponse{Data: data, Count: len(data)})
}

// List handles GET /v1/payments.
//
// @Summary      List payment dues
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPaymentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	data := make([]paymentResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toPaymentResponse(&item.Payment, item.Resident, item.Overdue))
	}
	return c.JSON(http.StatusOK, listPaymentsResponse{Data: data})
}

// Pay handles POST /v1/payments/:id/pay — the owning resident records a
// payment with its transaction reference.
//
// @Summary      Mark a due as paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Payment id"
// @Param        body  body      payRequest  true  "Transaction reference"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments/{id}/pay [post]
func (h *PaymentHandler) Pay(c echo.Context) error {
	var req payRequest
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

	payment, err := h.service.MarkPaid(c.Request().Context(), actor, c.Param("id"), req.TransactionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment, nil, false))
}

// Verify handles POST /v1/payments/:id/verify. Admin only.
//
// @Summary      Verify a paid due
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Payment id"
// @Success      200  {object}  paymentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/payments/{id}/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payment, err := h.service.Verify(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPaymentResponse(payment, nil, false))
}

func toPaymentResponse(p *domain.Payment, resident *ports.ProfileRef, overdue bool) paymentResponse {
	resp := paymentResponse{
		ID:            p.ID,
		ResidentID:    p.ResidentID,
		Amount:        p.Amount,
		Description:   p.Description,
		DueDate:       p.DueDate,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		VerifiedBy:    p.VerifiedBy,
		VerifiedAt:    p.VerifiedAt,
		CreatedAt:     p.CreatedAt,
		Overdue:       overdue,
	}
	if resident != nil {
		resp.Resident = &profileRefResponse{ID: resident.ID, FullName: resident.FullName, FlatNumber: resident.FlatNumber}
	}
	return resp
}
