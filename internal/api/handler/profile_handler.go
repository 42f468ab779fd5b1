package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for profile self-service and the
// resident directory.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	FullName   *string `json:"full_name"`
	FlatNumber *string `json:"flat_number"`
	Phone      *string `json:"phone"`
}

type listProfilesResponse struct {
	Data []*domain.Profile `json:"data"`
}

// Get handles GET /v1/profiles/me.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profiles/me [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// Update handles PATCH /v1/profiles/me. Omitted fields are left unchanged;
// role is not editable here.
//
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/profiles/me [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Update(c.Request().Context(), actor, ports.ProfileUpdate{
		FullName:   req.FullName,
		FlatNumber: req.FlatNumber,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// ListResidents handles GET /v1/profiles/residents — the directory backing
// visitor and payment creation forms. Admin and security only.
//
// @Summary      List resident profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProfilesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/profiles/residents [get]
func (h *ProfileHandler) ListResidents(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profiles, err := h.service.ListResidents(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProfilesResponse{Data: profiles})
}
