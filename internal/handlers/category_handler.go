package handlers

import (
	"github.com/gin-gonic/gin"

	"moneynote/internal/envelope"
	apperrors "moneynote/internal/errors"
	"moneynote/internal/models"
	"moneynote/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Type string `json:"type" binding:"required,category_type"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
	Sort *int   `json:"sort"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// Omitted fields are left unchanged.
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
	Type *string `json:"type" binding:"omitempty,category_type"`
	Icon *string `json:"icon" binding:"omitempty,max=50"`
	Sort *int    `json:"sort"`
}

// ListCategories returns every category visible to the user
// @Summary     List categories
// @Description List user-owned and global default categories, sorted by sort then recency
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} envelope.Envelope{data=[]models.Category} "Categories"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, categories)
}

// CreateCategory creates a category, reusing an existing identical one
// @Summary     Create a category
// @Description Create a category; an existing visible (name, type) match is returned instead of a duplicate
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     200 {object} envelope.Envelope{data=models.Category} "Created or reused category"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sort := 0
	if req.Sort != nil {
		sort = *req.Sort
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, models.CategoryType(req.Type), req.Icon, sort)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, category)
}

// UpdateCategory applies a partial update to an owned category
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} envelope.Envelope{data=models.Category} "Updated category"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.CategoryUpdate{
		Name: req.Name,
		Icon: req.Icon,
		Sort: req.Sort,
	}
	if req.Type != nil {
		categoryType := models.CategoryType(*req.Type)
		update.Type = &categoryType
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, category)
}

// DeleteCategory deletes an owned category with no referencing transactions
// @Summary     Delete a category
// @Description Fails with a conflict while any transaction references the category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} envelope.Envelope "Deleted"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, nil)
}
