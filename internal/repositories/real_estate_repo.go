package repositories

import "imobi/internal/models"

// RealEstateRepository defines the interface for real-estate data access.
type RealEstateRepository interface {
	Create(realEstate *models.RealEstate) error
	GetByIDs(ids []uint) ([]models.RealEstate, error)
	// ListByOwner returns the owner's real estates ordered by name descending.
	// With assignedOnly, only real estates linked to at least one property are
	// returned, each exactly once.
	ListByOwner(ownerID uint, assignedOnly bool) ([]models.RealEstate, error)
}
