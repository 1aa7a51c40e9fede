package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"pressfix/utils"
)

// AdminController implements the single boolean admin gate: one password,
// checked against a bcrypt hash from the environment, exchanged for a
// short-lived token. There are no user accounts.
type AdminController struct {
	PasswordHash string
	JWTSecret    string
	Logger       *log.Logger
}

func NewAdminController(passwordHash, jwtSecret string, logger *log.Logger) *AdminController {
	return &AdminController{
		PasswordHash: passwordHash,
		JWTSecret:    jwtSecret,
		Logger:       logger,
	}
}

// Login handles POST /admin/login.
func (ac *AdminController) Login(c *fiber.Ctx) error {
	var input struct {
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if ac.PasswordHash == "" {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Admin access is not configured", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ac.PasswordHash), []byte(input.Password)); err != nil {
		ac.Logger.Printf("Failed admin login attempt from %s", c.IP())
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid password", nil)
	}

	token, err := utils.GenerateAdminToken(ac.JWTSecret)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"token": token}))
}
