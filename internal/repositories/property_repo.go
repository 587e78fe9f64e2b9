package repositories

import "imobi/internal/models"

// PropertyRepository defines the interface for property data access.
type PropertyRepository interface {
	// Create persists the property together with any pre-attached real-estate
	// associations.
	Create(property *models.Property) error
	// GetByOwnerAndID returns the property with its associations loaded, or
	// models.ErrNotFound when the row does not exist or belongs to another user.
	GetByOwnerAndID(ownerID, id uint) (*models.Property, error)
	// ListByOwner returns the owner's properties newest first. A non-empty
	// realEstateIDs set restricts results to properties linked to at least one
	// of those real estates.
	ListByOwner(ownerID uint, realEstateIDs []uint) ([]models.Property, error)
	// Update saves the property's scalar fields and, when replace is set,
	// swaps the association set for realEstates in the same transaction.
	Update(property *models.Property, realEstates []models.RealEstate, replace bool) error
}
