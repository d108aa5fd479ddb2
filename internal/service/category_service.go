package service

import (
	"context"
	"sort"
	"strings"

	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/repository"
)

// CategoryService resolves the per-user effective category list and
// enforces the naming invariants on category mutations.
//
// Default categories (no owner) are shared by everyone. A user never
// edits a default row directly; customizing one creates an owned copy
// with the same name, which then shadows the default in that user's view.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// EffectiveCategories returns the categories visible to the user: every
// owned category plus each default whose name the user has not shadowed.
// The result is sorted by name and contains no duplicate names.
func (s *CategoryService) EffectiveCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	owned, err := s.categories.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	defaults, err := s.categories.ListDefaults(ctx)
	if err != nil {
		return nil, err
	}
	return mergeEffective(owned, defaults), nil
}

// mergeEffective applies shadowing: an owned category hides any default
// with the same name. The default rows are never touched.
func mergeEffective(owned, defaults []models.Category) []models.Category {
	shadowed := make(map[string]struct{}, len(owned))
	for _, c := range owned {
		shadowed[c.Name] = struct{}{}
	}

	merged := make([]models.Category, 0, len(owned)+len(defaults))
	merged = append(merged, owned...)
	for _, c := range defaults {
		if _, ok := shadowed[c.Name]; !ok {
			merged = append(merged, c)
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}

// Create adds a category owned by the user.
//
// The owned-name check deliberately runs before the reserved-name check:
// a user who already shadowed a default gets ErrDuplicateName for that
// name, and ErrReservedName is only reachable for unshadowed defaults.
// Customizing a default goes through Edit, not Create.
func (s *CategoryService) Create(ctx context.Context, userID int64, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	ownedExists, err := s.categories.OwnedNameExists(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if ownedExists {
		return nil, ErrDuplicateName
	}

	defaultExists, err := s.categories.DefaultNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if defaultExists {
		return nil, ErrReservedName
	}

	cat, err := s.categories.Create(ctx, userID, name, description)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return cat, nil
}

// Edit updates a category visible to the user.
//
// Owned categories update in place, name included. Editing a default
// never mutates the default row: it creates an owned copy with the same
// name and the new description, which shadows the default from then on.
// Categories owned by other users are reported as not found.
func (s *CategoryService) Edit(ctx context.Context, userID, categoryID int64, name, description string) (*models.Category, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch {
	case cat.OwnedBy(userID):
		newName := strings.TrimSpace(name)
		if newName == "" {
			newName = cat.Name
		}
		if err := validateCategoryName(newName); err != nil {
			return nil, err
		}
		if newName != cat.Name {
			exists, err := s.categories.OwnedNameExists(ctx, userID, newName)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrDuplicateName
			}
		}
		if err := s.categories.Update(ctx, cat.ID, newName, description); err != nil {
			if IsUniqueViolation(err) {
				return nil, ErrDuplicateName
			}
			return nil, err
		}
		cat.Name = newName
		cat.Description = description
		return cat, nil

	case cat.IsDefault():
		// Shadow path. The name is not editable here: the copy keeps the
		// default's name so it supersedes it in the user's effective view.
		shadow, err := s.categories.Create(ctx, userID, cat.Name, description)
		if err != nil {
			if IsUniqueViolation(err) {
				return nil, ErrDuplicateName
			}
			return nil, err
		}
		return shadow, nil

	default:
		return nil, ErrNotFound
	}
}

// Delete removes one of the user's own categories. Defaults and other
// users' categories are not deletable.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID int64) error {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if !cat.OwnedBy(userID) {
		return ErrPermission
	}

	return s.categories.Delete(ctx, cat.ID)
}

// VisibleByID returns a category visible to the user: one they own, or a
// shared default. Anything else is reported as not found.
func (s *CategoryService) VisibleByID(ctx context.Context, userID, categoryID int64) (*models.Category, error) {
	return visibleCategory(ctx, s.categories, userID, categoryID)
}

func visibleCategory(ctx context.Context, categories *repository.CategoryRepository, userID, categoryID int64) (*models.Category, error) {
	cat, err := categories.GetByID(ctx, categoryID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cat.IsDefault() && !cat.OwnedBy(userID) {
		return nil, ErrNotFound
	}
	return cat, nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	if len(name) > models.MaxCategoryNameLength {
		return validationErr("name", "must be at most 100 characters")
	}
	return nil
}
