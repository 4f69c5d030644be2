package controllers

import (
	"fmt"
	"strings"

	"coursehub/backend/middleware"
	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/utils"
	"coursehub/backend/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	Gateway *storage.Gateway
	Session *session.Session
	Log     *zap.Logger
}

func NewUserController(gw *storage.Gateway, sess *session.Session, log *zap.Logger) *UserController {
	return &UserController{Gateway: gw, Session: sess, Log: log}
}

type UpdateUserRequest struct {
	FirstName   *string `json:"firstName" example:"Ada" maxLength:"50"`
	LastName    *string `json:"lastName" example:"Lovelace" maxLength:"50"`
	Phone       *string `json:"phone" example:"+41 76 123 45 67"`
	OldPassword string  `json:"oldPassword"`
	NewPassword string  `json:"newPassword" minLength:"6"`
}

func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(middleware.UserKey).(*models.User)
	return u
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the signed-in user with reservation and review counts
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":         user.Public(),
		"reservations": len(uc.Gateway.ReservationsForUser(*user)),
		"reviews":      len(uc.Gateway.ReviewsByAuthor(user.Email)),
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates names and phone, and changes the password when both passwords are given
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Profile update data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	errs := validation.Errors{}
	if input.FirstName != nil {
		errs.Check(validation.Name(*input.FirstName), "firstName", "First name must be 1 to 50 characters")
	}
	if input.LastName != nil {
		errs.Check(validation.Name(*input.LastName), "lastName", "Last name must be 1 to 50 characters")
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) != "" {
		errs.Check(validation.Phone(strings.TrimSpace(*input.Phone)), "phone", "Please enter a valid phone number")
	}

	var newHash string
	if input.NewPassword != "" {
		if errs.Check(validation.Password(input.NewPassword), "newPassword", "Password must be at least 6 characters long") &&
			errs.Check(validation.PasswordFits(input.NewPassword), "newPassword", "Password must be at most 72 bytes long") {
			stored, err := uc.Gateway.UserByEmail(user.Email)
			if err != nil {
				return utils.HandleError(c, err)
			}
			if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(input.OldPassword)) != nil {
				errs["oldPassword"] = "Current password is incorrect"
			} else if newHash, err = session.HashPassword(input.NewPassword); err != nil {
				return utils.InternalServerError(c, "Could not hash password")
			}
		}
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	updated, err := uc.Gateway.UpdateUser(user.ID, func(u *models.User) {
		if input.FirstName != nil {
			u.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			u.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.Phone != nil {
			u.Phone = strings.TrimSpace(*input.Phone)
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
	})
	if err != nil {
		return utils.HandleError(c, err)
	}

	uc.Log.Info("Profile updated", zap.String("user_id", user.ID), zap.Bool("password_changed", newHash != ""))
	return utils.Success(c, fiber.StatusOK, updated.Public())
}

func (uc *UserController) GetReservations(c *fiber.Ctx) error {
	reservations := uc.Gateway.ReservationsForUser(*currentUser(c))
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return utils.Success(c, fiber.StatusOK, reservations)
}

// CancelReservation cancels one of the signed-in user's reservations.
// Reservations of other users look missing.
func (uc *UserController) CancelReservation(c *fiber.Ctx) error {
	user := currentUser(c)
	id := c.Params("id")

	owned := false
	for _, r := range uc.Gateway.ReservationsForUser(*user) {
		if r.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return utils.HandleError(c, fmt.Errorf("reservation %s: %w", id, storage.ErrNotFound))
	}

	r, err := uc.Gateway.CancelReservation(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	uc.Log.Info("Reservation cancelled", zap.String("reservation_id", id), zap.String("user_id", user.ID))
	return utils.Success(c, fiber.StatusOK, r)
}

func (uc *UserController) GetReviews(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, newestFirst(uc.Gateway.ReviewsByAuthor(currentUser(c).Email)))
}
