package handlers

import (
	"log"
	"strconv"
	"strings"

	"imobi/internal/models"
	"imobi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PropertyHandler handles HTTP requests for properties.
type PropertyHandler struct {
	service  *services.PropertyService
	validate *validator.Validate
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the property routes with the Fiber app.
func (h *PropertyHandler) RegisterRoutes(router fiber.Router) {
	propertyRoutes := router.Group("/imoveis")
	propertyRoutes.Get("/", h.HandleListProperties)
	propertyRoutes.Post("/", h.HandleCreateProperty)
	propertyRoutes.Get("/:id", h.HandleGetProperty)
	propertyRoutes.Patch("/:id", h.HandlePatchProperty)
	propertyRoutes.Put("/:id", h.HandlePutProperty)
}

// PropertyResponse is the list representation of a property: associated real
// estates appear as bare ids.
type PropertyResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Features    string `json:"features"`
	Status      bool   `json:"status"`
	Type        string `json:"type"`
	Finality    string `json:"finality"`
	RealEstates []uint `json:"real_estates"`
}

// PropertyDetailResponse is the detail representation: associated real
// estates are fully materialized.
type PropertyDetailResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Address     string              `json:"address"`
	Description string              `json:"description"`
	Features    string              `json:"features"`
	Status      bool                `json:"status"`
	Type        string              `json:"type"`
	Finality    string              `json:"finality"`
	RealEstates []models.RealEstate `json:"real_estates"`
}

func toPropertyResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Features:    p.Features,
		Status:      p.Status,
		Type:        p.Type,
		Finality:    p.Finality,
		RealEstates: p.RealEstateIDs(),
	}
}

func toPropertyDetailResponse(p *models.Property) PropertyDetailResponse {
	realEstates := p.RealEstates
	if realEstates == nil {
		realEstates = []models.RealEstate{}
	}
	return PropertyDetailResponse{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Features:    p.Features,
		Status:      p.Status,
		Type:        p.Type,
		Finality:    p.Finality,
		RealEstates: realEstates,
	}
}

// parseRealEstateFilter parses the real_estates query parameter, a
// comma-separated list of integer ids. Any malformed token fails the whole
// filter instead of being silently dropped.
func parseRealEstateFilter(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	tokens := strings.Split(raw, ",")
	ids := make([]uint, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil {
			return nil, models.ErrInvalidFilterValues
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// HandleListProperties lists the caller's properties newest first, optionally
// filtered to those linked to any of the given real estates.
func (h *PropertyHandler) HandleListProperties(c *fiber.Ctx) error {
	filterIDs, err := parseRealEstateFilter(c.Query("real_estates"))
	if err != nil {
		return errorResponse(c, err)
	}

	properties, err := h.service.ListProperties(currentUser(c).ID, filterIDs)
	if err != nil {
		log.Printf("Error listing properties: %v", err)
		return errorResponse(c, err)
	}

	response := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		response = append(response, toPropertyResponse(&properties[i]))
	}
	return c.JSON(response)
}

// CreatePropertyRequest represents the request body for creating a property
// and for full updates.
type CreatePropertyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Address     string `json:"address" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=255"`
	Features    string `json:"features" validate:"max=255"`
	Status      bool   `json:"status"`
	Type        string `json:"type" validate:"required,max=255"`
	Finality    string `json:"finality" validate:"max=255"`
	RealEstates []uint `json:"real_estates"`
}

// HandleCreateProperty creates a property owned by the caller.
func (h *PropertyHandler) HandleCreateProperty(c *fiber.Ctx) error {
	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create property body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	property := &models.Property{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Features:    req.Features,
		Status:      req.Status,
		Type:        req.Type,
		Finality:    req.Finality,
	}
	property, err := h.service.CreateProperty(currentUser(c).ID, property, req.RealEstates)
	if err != nil {
		log.Printf("Error creating property: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toPropertyResponse(property))
}

// propertyID parses the :id path parameter. Non-numeric ids are reported as
// not found, the same as ids that do not exist.
func propertyID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, models.ErrNotFound
	}
	return uint(id), nil
}

// HandleGetProperty returns the detail view of one of the caller's
// properties, with associated real estates expanded into full objects.
func (h *PropertyHandler) HandleGetProperty(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	property, err := h.service.GetProperty(currentUser(c).ID, id)
	if err != nil {
		log.Printf("Error getting property %d: %v", id, err)
		return errorResponse(c, err)
	}
	return c.JSON(toPropertyDetailResponse(property))
}

// PatchPropertyRequest represents a partial property update. Absent scalar
// fields are left unchanged; a present real_estates list replaces the
// association set.
type PatchPropertyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Features    *string `json:"features" validate:"omitempty,max=255"`
	Status      *bool   `json:"status"`
	Type        *string `json:"type" validate:"omitempty,max=255"`
	Finality    *string `json:"finality" validate:"omitempty,max=255"`
	RealEstates *[]uint `json:"real_estates"`
}

// HandlePatchProperty merges the supplied fields into the property.
func (h *PropertyHandler) HandlePatchProperty(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req PatchPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing property patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	input := services.PropertyInput{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Features:    req.Features,
		Status:      req.Status,
		Type:        req.Type,
		Finality:    req.Finality,
	}
	var realEstateIDs []uint
	replace := req.RealEstates != nil
	if replace {
		realEstateIDs = *req.RealEstates
	}

	property, err := h.service.UpdateProperty(currentUser(c).ID, id, input, realEstateIDs, replace)
	if err != nil {
		log.Printf("Error patching property %d: %v", id, err)
		return errorResponse(c, err)
	}
	return c.JSON(toPropertyResponse(property))
}

// HandlePutProperty replaces all scalar fields of the property. Omitting
// real_estates clears the association set.
func (h *PropertyHandler) HandlePutProperty(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing property put body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	input := services.PropertyInput{
		Name:        &req.Name,
		Address:     &req.Address,
		Description: &req.Description,
		Features:    &req.Features,
		Status:      &req.Status,
		Type:        &req.Type,
		Finality:    &req.Finality,
	}

	property, err := h.service.UpdateProperty(currentUser(c).ID, id, input, req.RealEstates, true)
	if err != nil {
		log.Printf("Error updating property %d: %v", id, err)
		return errorResponse(c, err)
	}
	return c.JSON(toPropertyResponse(property))
}
