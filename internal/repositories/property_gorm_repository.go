package repositories

import (
	"fmt"

	"imobi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPropertyRepository is a GORM implementation of PropertyRepository.
type GORMPropertyRepository struct {
	db *gorm.DB
}

// NewGORMPropertyRepository creates a new instance of GORMPropertyRepository.
func NewGORMPropertyRepository(db *gorm.DB) *GORMPropertyRepository {
	return &GORMPropertyRepository{
		db: db,
	}
}

// Create creates a new property in the database. Associations attached to
// property.RealEstates are written to the join table in the same insert
// transaction.
func (r *GORMPropertyRepository) Create(property *models.Property) error {
	if err := r.db.Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// GetByOwnerAndID retrieves a single property scoped to its owner, with the
// associated real estates preloaded. Rows owned by other users are reported
// as not found rather than forbidden.
func (r *GORMPropertyRepository) GetByOwnerAndID(ownerID, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("RealEstates").
		First(&property, "properties.user_id = ? AND properties.id = ?", ownerID, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("property with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property by ID %d: %w", id, err)
	}
	return &property, nil
}

// ListByOwner retrieves the owner's properties newest first, with the
// associated real estates preloaded. With a filter set, the join against
// property_real_estates can match a property once per linked real estate,
// so the select is DISTINCT.
func (r *GORMPropertyRepository) ListByOwner(ownerID uint, realEstateIDs []uint) ([]models.Property, error) {
	query := r.db.Preload("RealEstates").
		Where("properties.user_id = ?", ownerID).
		Order("properties.id DESC")

	if len(realEstateIDs) > 0 {
		query = query.
			Joins("JOIN property_real_estates ON property_real_estates.property_id = properties.id").
			Where("property_real_estates.real_estate_id IN ?", realEstateIDs).
			Distinct("properties.*")
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties for user %d: %w", ownerID, err)
	}
	return properties, nil
}

// Update saves the property's scalar fields and, when replace is set, swaps
// the association set in the same transaction so a failed replacement never
// leaves a half-updated row.
func (r *GORMPropertyRepository) Update(property *models.Property, realEstates []models.RealEstate, replace bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(property).Error; err != nil {
			return err
		}
		if replace {
			if err := tx.Model(property).Association("RealEstates").Replace(&realEstates); err != nil {
				return err
			}
			property.RealEstates = realEstates
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update property %d: %w", property.ID, err)
	}
	return nil
}
