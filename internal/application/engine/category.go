package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name  string
	Type  entity.CategoryType
	Color string // Defaults to entity.DefaultCategoryColor
}

// UpdateCategoryInput carries the fields to change. Nil fields are preserved.
type UpdateCategoryInput struct {
	Name  *string
	Color *string
}

func validateCategoryName(name string) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if len(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

func validateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex code (e.g., #FF5733)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}

// CreateCategory creates a category for the session user.
func (e *Engine) CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	category := entity.NewCategory(e.session.UserID, name, input.Type, color, false)
	e.stamp(&category.CreatedAt, &category.UpdatedAt)
	if err := e.store.Categories().Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	e.markDirty()
	return category, nil
}

// getCategory returns a category owned by the session user.
func (e *Engine) getCategory(ctx context.Context, store adapter.RecordStore, id uuid.UUID) (*entity.Category, error) {
	category, err := store.Categories().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, categoryNotFound()
		}
		return nil, err
	}
	if category.UserID != e.session.UserID {
		return nil, categoryNotFound()
	}
	return category, nil
}

func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// ListCategories returns the session user's categories, optionally filtered by type.
func (e *Engine) ListCategories(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	return e.store.Categories().FindByUser(ctx, e.session.UserID, categoryType)
}

// UpdateCategory merges input onto the stored category.
func (e *Engine) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*entity.Category, error) {
	category, err := e.getCategory(ctx, e.store, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateCategoryName(name); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		category.Color = *input.Color
	}
	category.UpdatedAt = e.timestamp()

	if err := e.store.Categories().Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	e.markDirty()
	return category, nil
}

// DeleteCategory removes a category.
func (e *Engine) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := e.getCategory(ctx, e.store, id); err != nil {
		return err
	}
	if err := e.store.Categories().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	e.markDirty()
	return nil
}

// EnsureDefaultCategories seeds the default categories when the user has none.
// It returns the user's categories either way.
func (e *Engine) EnsureDefaultCategories(ctx context.Context) ([]*entity.Category, error) {
	existing, err := e.store.Categories().FindByUser(ctx, e.session.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	created := make([]*entity.Category, 0, len(entity.DefaultCategories))
	err = e.store.WithinTransaction(ctx, func(tx adapter.RecordStore) error {
		for _, tmpl := range entity.DefaultCategories {
			category := entity.NewCategory(e.session.UserID, tmpl.Name, tmpl.Type, tmpl.Color, true)
			e.stamp(&category.CreatedAt, &category.UpdatedAt)
			if err := tx.Categories().Create(ctx, category); err != nil {
				return fmt.Errorf("failed to create default category %s: %w", tmpl.Name, err)
			}
			created = append(created, category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.markDirty()
	return created, nil
}
