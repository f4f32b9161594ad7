package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rmarques/game-deal-tracker/internal/reviews"
)

// ReviewHandler serves the deduplicated review store.
type ReviewHandler struct {
	reviews *reviews.Service
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc *reviews.Service) *ReviewHandler {
	return &ReviewHandler{reviews: svc}
}

// reviewRequest is the create/generate request body.
type reviewRequest struct {
	GameName string `json:"game_name"`
	Content  string `json:"content"`
}

// updateReviewRequest is the update request body.
type updateReviewRequest struct {
	Content string `json:"content"`
}

// Get handles GET /api/v1/reviews/:game.
//
// @Summary Get a review
// @Description Returns the review for a game, keyed by normalized name.
// @Tags reviews
// @Produce json
// @Param game path string true "Game name"
// @Success 200 {object} domain.Review
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/reviews/{game} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	r, err := h.reviews.Get(c.Request().Context(), c.Param("game"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /api/v1/reviews.
//
// @Summary Create a review
// @Description Persists a human-authored review; at most one per game.
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body reviewRequest true "Review to create"
// @Success 201 {object} domain.Review
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if req.GameName == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "game_name and content are required",
		})
	}

	r, err := h.reviews.Create(c.Request().Context(), req.GameName, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Generate handles POST /api/v1/reviews/generate.
//
// @Summary Generate a review
// @Description Generates a review with the configured LLM backend; at most one per game.
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body reviewRequest true "Game to review"
// @Success 201 {object} domain.Review
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/reviews/generate [post]
func (h *ReviewHandler) Generate(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if req.GameName == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "game_name is required"})
	}

	r, err := h.reviews.GenerateIfAbsent(c.Request().Context(), req.GameName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Update handles PUT /api/v1/reviews/:id.
//
// @Summary Update a review
// @Description Replaces a review's content and clears the AI-generated flag.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review UUID"
// @Param review body updateReviewRequest true "New content"
// @Success 200 {object} domain.Review
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid review id"})
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "content is required"})
	}

	r, err := h.reviews.Update(c.Request().Context(), id, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/v1/reviews/:id.
//
// @Summary Delete a review
// @Description Removes a review by id.
// @Tags reviews
// @Produce json
// @Param id path string true "Review UUID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid review id"})
	}

	if err := h.reviews.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
