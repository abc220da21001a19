package service

import (
	"context"

	"recurring-planner/internal/model"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) List(ctx context.Context, user *model.User) ([]model.Category, error) {
	return s.store.ListByUser(ctx, user.ID)
}

// Predefined returns the built-in category names offered to every user.
func (s *CategoryService) Predefined() []string {
	return model.PredefinedCategories
}

// EnsureDefaults creates the predefined categories for the user if they are
// missing. Existing categories with the same name are left untouched.
func (s *CategoryService) EnsureDefaults(ctx context.Context, user *model.User) error {
	for _, name := range s.Predefined() {
		if _, err := s.store.GetOrCreate(ctx, user.ID, name); err != nil {
			return err
		}
	}
	return nil
}
