package handlers

import (
	"log"

	"imobi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts, tokens and profiles.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Creation and
// token issuance are public; the profile endpoints sit behind authRequired.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/user")
	userRoutes.Post("/create", h.HandleCreateUser)
	userRoutes.Post("/token", h.HandleCreateToken)
	userRoutes.Get("/me", authRequired, h.HandleGetProfile)
	userRoutes.Patch("/me", authRequired, h.HandlePatchProfile)
	userRoutes.Put("/me", authRequired, h.HandlePutProfile)
}

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=255"`
}

// HandleCreateUser handles new user registration.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.authService.RegisterUser(req.Email, req.Password, req.Name)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// CreateTokenRequest represents the request body for token issuance.
type CreateTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleCreateToken verifies credentials and issues an opaque bearer token.
// Missing fields and bad credentials are answered identically.
func (h *UserHandler) HandleCreateToken(c *fiber.Ctx) error {
	var req CreateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing token request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// ProfileResponse is the representation of the authenticated user's profile.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGetProfile returns the authenticated user's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(ProfileResponse{
		Email: user.Email,
		Name:  user.Name,
	})
}

// PatchProfileRequest represents a partial profile update. Absent fields are
// left unchanged.
type PatchProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// HandlePatchProfile merges the supplied fields into the profile.
func (h *UserHandler) HandlePatchProfile(c *fiber.Ctx) error {
	var req PatchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.authService.UpdateProfile(currentUser(c), req.Email, req.Name, req.Password)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(ProfileResponse{
		Email: user.Email,
		Name:  user.Name,
	})
}

// PutProfileRequest represents a full profile update. Email and name are
// required; a supplied password is re-hashed.
type PutProfileRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// HandlePutProfile replaces the profile's required fields.
func (h *UserHandler) HandlePutProfile(c *fiber.Ctx) error {
	var req PutProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile put body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.authService.UpdateProfile(currentUser(c), &req.Email, &req.Name, req.Password)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return errorResponse(c, err)
	}

	return c.JSON(ProfileResponse{
		Email: user.Email,
		Name:  user.Name,
	})
}
