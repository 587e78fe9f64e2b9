package services_test

import (
	"testing"

	"imobi/internal/models"
	"imobi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a mock implementation of repositories.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(property *models.Property) error {
	args := m.Called(property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByOwnerAndID(ownerID, id uint) (*models.Property, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(ownerID uint, realEstateIDs []uint) ([]models.Property, error) {
	args := m.Called(ownerID, realEstateIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(property *models.Property, realEstates []models.RealEstate, replace bool) error {
	args := m.Called(property, realEstates, replace)
	return args.Error(0)
}

// MockRealEstateRepository is a mock implementation of repositories.RealEstateRepository
type MockRealEstateRepository struct {
	mock.Mock
}

func (m *MockRealEstateRepository) Create(realEstate *models.RealEstate) error {
	args := m.Called(realEstate)
	return args.Error(0)
}

func (m *MockRealEstateRepository) GetByIDs(ids []uint) ([]models.RealEstate, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RealEstate), args.Error(1)
}

func (m *MockRealEstateRepository) ListByOwner(ownerID uint, assignedOnly bool) ([]models.RealEstate, error) {
	args := m.Called(ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RealEstate), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestPropertyService_CreateProperty(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	estates := []models.RealEstate{{ID: 1, Name: "Imobiliaria 1"}, {ID: 2, Name: "Imobiliaria 2"}}
	mockRealEstates.On("GetByIDs", []uint{1, 2}).Return(estates, nil).Once()
	mockProperties.On("Create", mock.AnythingOfType("*models.Property")).Return(nil).Once()

	property := &models.Property{Name: "Imovel x", Address: "Endereço X", Description: "etc", Type: "Home"}
	created, err := service.CreateProperty(42, property, []uint{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, uint(42), created.UserID)
	assert.Len(t, created.RealEstates, 2)
	mockProperties.AssertExpectations(t)
	mockRealEstates.AssertExpectations(t)
}

func TestPropertyService_CreateProperty_UnknownRealEstate(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	// Only one of two ids resolves, so the create is rejected wholesale.
	mockRealEstates.On("GetByIDs", []uint{1, 99}).Return([]models.RealEstate{{ID: 1}}, nil).Once()

	_, err := service.CreateProperty(42, &models.Property{Name: "Imovel x"}, []uint{1, 99})
	assert.ErrorIs(t, err, models.ErrInvalidRealEstates)
	mockProperties.AssertNotCalled(t, "Create", mock.Anything)
	mockRealEstates.AssertExpectations(t)
}

func TestPropertyService_UpdateProperty_PartialMerge(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	existing := &models.Property{
		ID: 3, UserID: 42,
		Name: "Imovel Padrão", Address: "Endereço Padrão", Description: "etc",
		Features: "tex", Type: "Home", Finality: "residential",
	}
	mockProperties.On("GetByOwnerAndID", uint(42), uint(3)).Return(existing, nil).Once()
	mockProperties.On("Update", existing, []models.RealEstate(nil), false).Return(nil).Once()

	updated, err := service.UpdateProperty(42, 3, services.PropertyInput{Name: strPtr("Imovel Novo")}, nil, false)
	assert.NoError(t, err)
	assert.Equal(t, "Imovel Novo", updated.Name)
	// Unsupplied scalars keep their values
	assert.Equal(t, "Endereço Padrão", updated.Address)
	assert.Equal(t, "etc", updated.Description)
	assert.Equal(t, "residential", updated.Finality)
	mockProperties.AssertExpectations(t)
}

func TestPropertyService_UpdateProperty_ReplaceClearsAssociations(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	existing := &models.Property{
		ID: 3, UserID: 42, Name: "Imovel Padrão",
		RealEstates: []models.RealEstate{{ID: 1}},
	}
	mockProperties.On("GetByOwnerAndID", uint(42), uint(3)).Return(existing, nil).Once()
	mockRealEstates.On("GetByIDs", []uint{}).Return([]models.RealEstate{}, nil).Once()
	mockProperties.On("Update", existing, []models.RealEstate{}, true).Return(nil).Once()

	_, err := service.UpdateProperty(42, 3, services.PropertyInput{Name: strPtr("Imovel new 1")}, nil, true)
	assert.NoError(t, err)
	mockProperties.AssertExpectations(t)
	mockRealEstates.AssertExpectations(t)
}

func TestPropertyService_UpdateProperty_NotFound(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	mockProperties.On("GetByOwnerAndID", uint(42), uint(404)).Return(nil, models.ErrNotFound).Once()

	_, err := service.UpdateProperty(42, 404, services.PropertyInput{}, nil, false)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockProperties.AssertExpectations(t)
}

func TestPropertyService_ListProperties(t *testing.T) {
	mockProperties := new(MockPropertyRepository)
	mockRealEstates := new(MockRealEstateRepository)
	service := services.NewPropertyService(mockProperties, mockRealEstates, nil)

	expected := []models.Property{{ID: 2, Name: "Imovel 2"}, {ID: 1, Name: "Imovel 1"}}
	mockProperties.On("ListByOwner", uint(42), []uint{1, 2}).Return(expected, nil).Once()

	properties, err := service.ListProperties(42, []uint{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, expected, properties)
	mockProperties.AssertExpectations(t)
}
