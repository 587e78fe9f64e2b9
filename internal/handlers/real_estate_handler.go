package handlers

import (
	"log"
	"strconv"

	"imobi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RealEstateHandler handles HTTP requests for real estates.
type RealEstateHandler struct {
	service  *services.RealEstateService
	validate *validator.Validate
}

// NewRealEstateHandler creates a new RealEstateHandler.
func NewRealEstateHandler(service *services.RealEstateService) *RealEstateHandler {
	return &RealEstateHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the real-estate routes with the Fiber app.
func (h *RealEstateHandler) RegisterRoutes(router fiber.Router) {
	realEstateRoutes := router.Group("/imobiliarias")
	realEstateRoutes.Get("/", h.HandleListRealEstates)
	realEstateRoutes.Post("/", h.HandleCreateRealEstate)
}

// HandleListRealEstates lists the caller's real estates, newest name first.
// With assigned_only=1 only real estates linked to at least one property are
// returned.
func (h *RealEstateHandler) HandleListRealEstates(c *fiber.Ctx) error {
	assignedOnly, err := strconv.Atoi(c.Query("assigned_only", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "assigned_only must be 0 or 1",
		})
	}

	realEstates, err := h.service.ListRealEstates(currentUser(c).ID, assignedOnly != 0)
	if err != nil {
		log.Printf("Error listing real estates: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(realEstates)
}

// CreateRealEstateRequest represents the request body for creating a real
// estate.
type CreateRealEstateRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required,max=255"`
}

// HandleCreateRealEstate creates a real estate owned by the caller.
func (h *RealEstateHandler) HandleCreateRealEstate(c *fiber.Ctx) error {
	var req CreateRealEstateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create real estate body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	realEstate, err := h.service.CreateRealEstate(currentUser(c).ID, req.Name, req.Address)
	if err != nil {
		log.Printf("Error creating real estate: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(realEstate)
}
