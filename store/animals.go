package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreateAnimal inserts a. Loaded associations are not written.
func (s *Store) CreateAnimal(ctx context.Context, a *models.Animal) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("create animal: %w", err)
	}
	return nil
}

// GetAnimal returns the animal with its owner.
func (s *Store) GetAnimal(ctx context.Context, id uint) (*models.Animal, error) {
	var a models.Animal
	if err := first(s.conn(ctx).Preload("User"), &a, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAnimal overwrites the mutable columns of a.
func (s *Store) UpdateAnimal(ctx context.Context, a *models.Animal) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(a).Error; err != nil {
		return fmt.Errorf("update animal %d: %w", a.ID, err)
	}
	return nil
}

// DeleteAnimal removes a single animal.
func (s *Store) DeleteAnimal(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Animal{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete animal %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserAnimals returns a page of the user's animals.
func (s *Store) ListUserAnimals(ctx context.Context, userID uint, page Page) ([]models.Animal, int64, error) {
	var animals []models.Animal
	scope := func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) }
	total, err := s.list(ctx, &animals, page, scope)
	if err != nil {
		return nil, 0, fmt.Errorf("list animals of user %d: %w", userID, err)
	}
	return animals, total, nil
}
