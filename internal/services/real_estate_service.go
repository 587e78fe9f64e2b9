package services

import (
	"imobi/internal/models"
	"imobi/internal/repositories"
)

// RealEstateService handles business logic related to real estates.
type RealEstateService struct {
	repo repositories.RealEstateRepository
}

// NewRealEstateService creates a new RealEstateService.
func NewRealEstateService(repo repositories.RealEstateRepository) *RealEstateService {
	return &RealEstateService{
		repo: repo,
	}
}

// ListRealEstates retrieves the owner's real estates, optionally restricted
// to those assigned to at least one property.
func (s *RealEstateService) ListRealEstates(ownerID uint, assignedOnly bool) ([]models.RealEstate, error) {
	return s.repo.ListByOwner(ownerID, assignedOnly)
}

// CreateRealEstate creates a new real estate owned by the given user.
func (s *RealEstateService) CreateRealEstate(ownerID uint, name, address string) (*models.RealEstate, error) {
	realEstate := &models.RealEstate{
		Name:    name,
		Address: address,
		UserID:  ownerID,
	}
	if err := s.repo.Create(realEstate); err != nil {
		return nil, err
	}
	return realEstate, nil
}
