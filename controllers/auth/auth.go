package auth

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipment-tracking/constants"
	"shipment-tracking/logger"
	courierModel "shipment-tracking/models/courier"
	userModel "shipment-tracking/models/user"
	"shipment-tracking/types"
	authTypes "shipment-tracking/types/auth"
	"shipment-tracking/utils"
)

// AuthController handles login and account management.
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

func (ac *AuthController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return result
}

// Login checks the credentials and hands out a signed JWT.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "username and password are required",
		})
	}

	var account userModel.User
	if err := ac.DB.Where("username = ?", req.Username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ac.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid username or password",
			})
		}
		logger.Error("Failed to load user for login", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		return ac.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid username or password",
		})
	}

	token, err := signToken(&account)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to sign token",
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    account,
	})
}

// Register creates a new login. Courier-role accounts must name an existing,
// unlinked courier; the user insert and the courier link commit together.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if validationErr := req.Validate(); validationErr != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: validationErr.Error(),
		})
	}

	if req.Role == constants.RoleCourier && req.CourierCode == nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "courier_code is required for courier accounts",
		})
	}
	if req.Role != constants.RoleCourier && req.CourierCode != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "courier_code is only allowed for courier accounts",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		CourierCode:  req.CourierCode,
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if req.CourierCode != nil {
			var linked courierModel.Courier
			if err := tx.Where("code = ?", *req.CourierCode).First(&linked).Error; err != nil {
				return err
			}
			if linked.UserID != nil {
				return errors.New("courier already has a login")
			}
			if err := tx.Create(&newUser).Error; err != nil {
				return err
			}
			linked.UserID = &newUser.ID
			return tx.Save(&linked).Error
		}
		return tx.Create(&newUser).Error
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		status := fiber.StatusInternalServerError
		msg := "Failed to register user"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = fiber.StatusBadRequest
			msg = "courier does not exist"
		} else if err.Error() == "courier already has a login" {
			status = fiber.StatusConflict
			msg = err.Error()
		}
		return ac.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User registered successfully",
		Data:    newUser,
	})
}

// Profile returns the authenticated user's own record.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ac.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	userUUID, _ := claims["uuid"].(string)
	account, err := utils.GetUserByUUID(userUUID)
	if err != nil {
		status := fiber.StatusInternalServerError
		msg := "Database error"
		if err.Error() == "user not found" {
			status = fiber.StatusUnauthorized
			msg = "User not found"
		}
		return ac.sendResponseWithLog(c, status, types.ApiResponse{
			Status:  status,
			Message: msg,
		})
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    account,
	})
}

func signToken(account *userModel.User) (string, error) {
	claims := jwt.MapClaims{
		"uuid":     account.Uuid,
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	if account.CourierCode != nil {
		claims["courier_code"] = *account.CourierCode
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
