package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response for admin endpoints.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response for admin endpoints.
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// TrimPtr trims a string and returns nil when nothing remains, so optional
// lead fields persist as NULL instead of "".
func TrimPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ClientIP extracts the best-effort requester address: first entry of
// X-Forwarded-For, else X-Real-IP, else the socket peer. Returns nil when
// nothing usable is present.
func ClientIP(c *fiber.Ctx) *string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return &first
		}
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return &real
	}
	if ip := c.IP(); ip != "" {
		return &ip
	}
	return nil
}

// UserAgent returns the request's user agent, nil when absent.
func UserAgent(c *fiber.Ctx) *string {
	if ua := c.Get("User-Agent"); ua != "" {
		return &ua
	}
	return nil
}

// OrPlaceholder substitutes a placeholder for empty optional values in
// plain-text notification bodies.
func OrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
