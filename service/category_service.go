package service

import (
	"strings"

	"railcare/apperrors"
	"railcare/models"
	"railcare/repository"
)

// CategoryService maintains the Category → Type → Subtype hierarchy used
// for admin management and cascading form dropdowns.
type CategoryService struct {
	repo *repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Add inserts a new triple. Fails with DuplicateError when the exact triple
// already exists.
func (s *CategoryService) Add(category, typ, subtype string) (*models.CategoryEntry, error) {
	category, typ, subtype = strings.TrimSpace(category), strings.TrimSpace(typ), strings.TrimSpace(subtype)
	if category == "" || typ == "" || subtype == "" {
		return nil, apperrors.NewValidation("category", "category, type and subtype are all required")
	}

	exists, err := s.repo.TripleExists(category, typ, subtype)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate("category",
			category+" / "+typ+" / "+subtype+" already exists")
	}

	entry := &models.CategoryEntry{Category: category, Type: typ, SubType: subtype}
	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update fully replaces the triple of an existing entry.
func (s *CategoryService) Update(id int64, category, typ, subtype string) error {
	category, typ, subtype = strings.TrimSpace(category), strings.TrimSpace(typ), strings.TrimSpace(subtype)
	if category == "" || typ == "" || subtype == "" {
		return apperrors.NewValidation("category", "category, type and subtype are all required")
	}
	return s.repo.Update(id, category, typ, subtype)
}

// Delete hard-deletes an entry. Complaints already classified keep their
// denormalized type/subtype strings, so this never breaks existing rows.
func (s *CategoryService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// List returns every entry.
func (s *CategoryService) List() ([]models.CategoryEntry, error) {
	return s.repo.ListAll()
}

// Search substring-matches across category, type and subtype.
func (s *CategoryService) Search(term string) ([]models.CategoryEntry, error) {
	return s.repo.Search(term)
}

// HierarchicalData builds the nested Category → Type → [Subtype, ...] map
// for client-side cascading dropdowns. Regenerated on every call.
func (s *CategoryService) HierarchicalData() (models.CategoryHierarchy, error) {
	entries, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	hierarchy := make(models.CategoryHierarchy)
	for _, entry := range entries {
		types, ok := hierarchy[entry.Category]
		if !ok {
			types = make(map[string][]string)
			hierarchy[entry.Category] = types
		}
		types[entry.Type] = append(types[entry.Type], entry.SubType)
	}
	return hierarchy, nil
}
