package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shipment-tracking/database"
	"shipment-tracking/models/user"
	"shipment-tracking/types"
)

// GetUserByUUID retrieves a user by their UUID from the database
func GetUserByUUID(uuid string) (*user.User, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var userModel user.User
	if err := database.DB.Where("uuid = ?", uuid).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

// ValidatePhoneNumber validates a phone number.
// Allows: 08xxxxxxxxxx or +628xxxxxxxxxx (8 to 11 trailing digits)
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)

	pattern := `^(?:\+62|0)8[0-9]{8,11}$`
	re := regexp.MustCompile(pattern)

	return re.MatchString(phone)
}

// CreateSanitizedLogEntry creates a deep copied log entry for the async
// request logger. Copies everything so fasthttp's buffers can be reused.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := string(append([]byte(nil), c.Body()...))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
