package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/StefanHaring/InkPress/app/models"
	"github.com/StefanHaring/InkPress/app/repository"
	"github.com/StefanHaring/InkPress/internal/pkg/usercontext"
)

// UserController provisions local user rows for identities supplied by the
// external provider.
type UserController struct {
	userRepo repository.UserRepository
}

// NewUserController creates a new user controller with repository
func NewUserController(userRepo repository.UserRepository) *UserController {
	return &UserController{userRepo: userRepo}
}

// HandleSync creates the caller's user row on first sight. Idempotent: repeat
// calls and concurrent first requests all converge on one row.
func (uc *UserController) HandleSync(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return ErrorResponse(c, fiber.StatusUnauthorized, "User Not Authenticated")
	}

	created, err := uc.userRepo.CreateIfAbsent(&models.User{
		ID:       user.UserID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		log.Errorf("[User] sync failed for %s: %v", user.UserID, err)
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if created {
		log.Infof("[User] provisioned %s", user.UserID)
	}
	return SuccessResponse(c, fiber.StatusOK, "User synced successfully", fiber.Map{"created": created})
}
