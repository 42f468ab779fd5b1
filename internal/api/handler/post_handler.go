package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

// PostHandler handles HTTP requests for the community feed.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Title    string `json:"title"     validate:"required"`
	Content  string `json:"content"   validate:"required"`
	PostType string `json:"post_type" validate:"omitempty,oneof=announcement discussion poll alert"`
}

type pinPostRequest struct {
	Pinned bool `json:"pinned"`
}

type postResponse struct {
	ID        string              `json:"id"`
	AuthorID  string              `json:"author_id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	PostType  string              `json:"post_type"`
	IsPinned  bool                `json:"is_pinned"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Author    *profileRefResponse `json:"author,omitempty"`
}

type listPostsResponse struct {
	Data []postResponse `json:"data"`
}

// Create handles POST /v1/posts.
//
// @Summary      Create a community post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post details"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
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

	post, err := h.service.Create(c.Request().Context(), actor, ports.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		PostType: domain.PostType(req.PostType),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPostResponse(post, nil))
}

// List handles GET /v1/posts.
//
// @Summary      List the community feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPostsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]postResponse, 0, len(items))
	for _, item := range items {
		data = append(data, toPostResponse(&item.Post, item.Author))
	}
	return c.JSON(http.StatusOK, listPostsResponse{Data: data})
}

// Pin handles POST /v1/posts/:id/pin. Admin only (enforced by RBAC and the
// service).
//
// @Summary      Pin or unpin a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post id"
// @Param        body  body      pinPostRequest  true  "Pin flag"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/posts/{id}/pin [post]
func (h *PostHandler) Pin(c echo.Context) error {
	var req pinPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	post, err := h.service.SetPinned(c.Request().Context(), actor, c.Param("id"), req.Pinned)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPostResponse(post, nil))
}

func toPostResponse(p *domain.Post, author *ports.ProfileRef) postResponse {
	resp := postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		PostType:  string(p.PostType),
		IsPinned:  p.IsPinned,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if author != nil {
		resp.Author = &profileRefResponse{ID: author.ID, FullName: author.FullName, FlatNumber: author.FlatNumber}
	}
	return resp
}
