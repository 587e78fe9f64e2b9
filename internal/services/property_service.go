package services

import (
	"encoding/json"
	"log"

	"imobi/internal/models"
	"imobi/internal/repositories"
	"imobi/pkg/rabbitmq"
)

// PropertyService handles business logic related to properties.
type PropertyService struct {
	propertyRepo   repositories.PropertyRepository
	realEstateRepo repositories.RealEstateRepository
	mqClient       *rabbitmq.Client
}

// NewPropertyService creates a new PropertyService. mqClient may be nil, in
// which case no events are published.
func NewPropertyService(propertyRepo repositories.PropertyRepository, realEstateRepo repositories.RealEstateRepository, mqClient *rabbitmq.Client) *PropertyService {
	return &PropertyService{
		propertyRepo:   propertyRepo,
		realEstateRepo: realEstateRepo,
		mqClient:       mqClient,
	}
}

// PropertyInput carries the scalar fields of a property update. Nil fields
// are absent from the payload and left untouched.
type PropertyInput struct {
	Name        *string
	Address     *string
	Description *string
	Features    *string
	Status      *bool
	Type        *string
	Finality    *string
}

// ListProperties retrieves the owner's properties, optionally restricted to
// those linked to at least one of the given real estates.
func (s *PropertyService) ListProperties(ownerID uint, realEstateIDs []uint) ([]models.Property, error) {
	return s.propertyRepo.ListByOwner(ownerID, realEstateIDs)
}

// GetProperty retrieves a single property scoped to its owner.
func (s *PropertyService) GetProperty(ownerID, id uint) (*models.Property, error) {
	return s.propertyRepo.GetByOwnerAndID(ownerID, id)
}

// CreateProperty creates a property owned by the given user, linked to the
// referenced real estates, and publishes a property.created event.
func (s *PropertyService) CreateProperty(ownerID uint, property *models.Property, realEstateIDs []uint) (*models.Property, error) {
	realEstates, err := s.resolveRealEstates(realEstateIDs)
	if err != nil {
		return nil, err
	}

	property.UserID = ownerID
	property.RealEstates = realEstates
	if err := s.propertyRepo.Create(property); err != nil {
		return nil, err
	}

	s.publishCreated(property)
	return property, nil
}

// UpdateProperty applies the supplied scalar fields to the owner's property.
// When replace is set the association set is swapped for realEstateIDs; an
// empty id list then clears all associations.
func (s *PropertyService) UpdateProperty(ownerID, id uint, input PropertyInput, realEstateIDs []uint, replace bool) (*models.Property, error) {
	property, err := s.propertyRepo.GetByOwnerAndID(ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		property.Name = *input.Name
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Features != nil {
		property.Features = *input.Features
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
	if input.Type != nil {
		property.Type = *input.Type
	}
	if input.Finality != nil {
		property.Finality = *input.Finality
	}

	var realEstates []models.RealEstate
	if replace {
		realEstates, err = s.resolveRealEstates(realEstateIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.propertyRepo.Update(property, realEstates, replace); err != nil {
		return nil, err
	}
	return property, nil
}

// resolveRealEstates maps ids to rows and rejects the whole set when any id
// does not exist, so a create or update never silently drops a reference.
func (s *PropertyService) resolveRealEstates(ids []uint) ([]models.RealEstate, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	realEstates, err := s.realEstateRepo.GetByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(realEstates) != len(unique) {
		return nil, models.ErrInvalidRealEstates
	}
	return realEstates, nil
}

// publishCreated emits a property.created event. Publish failures are logged
// and never fail the request.
func (s *PropertyService) publishCreated(property *models.Property) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"propertyID": property.ID,
		"userID":     property.UserID,
		"name":       property.Name,
	}
	messageBody, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal property event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("property.created", messageBody); err != nil {
		log.Printf("Warning: Failed to publish property created event for property %d: %v", property.ID, err)
	} else {
		log.Printf("Successfully published property created event for property %d", property.ID)
	}
}
