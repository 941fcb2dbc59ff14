package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneynote/internal/errors"
	"moneynote/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns every category visible to the user: their own plus
// the global defaults. Category sets are small, so there is no pagination.
func (s *categoryService) ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.
		Where("user_id IN ?", []uint{userID, models.GlobalOwnerID}).
		Order("sort ASC").
		Order("created_at DESC").
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// CreateCategory resolves-or-creates a category. When a visible category with
// the same name and type already exists (user-owned or global), that row is
// returned unchanged; the natural-language transaction path relies on this
// being safe to call repeatedly.
func (s *categoryService) CreateCategory(
	userID uint,
	name string,
	categoryType models.CategoryType,
	icon string,
	sort int,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	var existing models.Category
	err := s.db.
		Where("user_id IN ? AND name = ? AND type = ?", []uint{userID, models.GlobalOwnerID}, name, categoryType).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Icon:   icon,
		Sort:   sort,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// getOwnedCategory retrieves a category owned by the user. Global categories
// and other users' categories are both reported as not found.
func (s *categoryService) getOwnedCategory(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update to a category the user owns.
func (s *categoryService) UpdateCategory(userID, categoryID uint, update CategoryUpdate) (*models.Category, error) {
	category, err := s.getOwnedCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if update.Type != nil && !update.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Sort != nil {
		updates["sort"] = *update.Sort
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory deletes a category the user owns. The referencing-transaction
// check runs before the delete so the conflict surfaces as a clean business
// error instead of a database foreign-key failure.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.getOwnedCategory(userID, categoryID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&refs).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refs > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
