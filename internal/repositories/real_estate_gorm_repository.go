package repositories

import (
	"fmt"

	"imobi/internal/models"

	"gorm.io/gorm"
)

// GORMRealEstateRepository is a GORM implementation of RealEstateRepository.
type GORMRealEstateRepository struct {
	db *gorm.DB
}

// NewGORMRealEstateRepository creates a new instance of GORMRealEstateRepository.
func NewGORMRealEstateRepository(db *gorm.DB) *GORMRealEstateRepository {
	return &GORMRealEstateRepository{
		db: db,
	}
}

// Create creates a new real estate in the database.
func (r *GORMRealEstateRepository) Create(realEstate *models.RealEstate) error {
	if err := r.db.Create(realEstate).Error; err != nil {
		return fmt.Errorf("failed to create real estate: %w", err)
	}
	return nil
}

// GetByIDs retrieves the real estates matching the given ids, in any order.
func (r *GORMRealEstateRepository) GetByIDs(ids []uint) ([]models.RealEstate, error) {
	var realEstates []models.RealEstate
	if len(ids) == 0 {
		return realEstates, nil
	}
	if err := r.db.Find(&realEstates, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get real estates by ids: %w", err)
	}
	return realEstates, nil
}

// ListByOwner retrieves the owner's real estates ordered by name descending.
// The assignedOnly join deliberately does not constrain the linked property's
// owner; only the real-estate rows themselves are owner-scoped. DISTINCT
// collapses real estates linked to more than one property into a single row.
func (r *GORMRealEstateRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.RealEstate, error) {
	query := r.db.Model(&models.RealEstate{}).
		Where("real_estates.user_id = ?", ownerID).
		Order("real_estates.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN property_real_estates ON property_real_estates.real_estate_id = real_estates.id").
			Distinct("real_estates.*")
	}

	var realEstates []models.RealEstate
	if err := query.Find(&realEstates).Error; err != nil {
		return nil, fmt.Errorf("failed to list real estates for user %d: %w", ownerID, err)
	}
	return realEstates, nil
}
