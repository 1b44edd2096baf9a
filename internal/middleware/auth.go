package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const actorKey = "actor"

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		},
	})
}

// CurrentActor loads the user named by the token's sub claim and stores it for
// the handlers. Must run after JWTProtected.
func CurrentActor(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.WithContext(c.UserContext()).Where("id = ?", userID).Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c, "Unauthorized: user no longer exists")
			}
			return err
		}

		c.Locals(actorKey, &user)
		return c.Next()
	}
}

// Actor returns the authenticated user, or nil on a public route.
func Actor(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(actorKey).(*models.User); ok {
		return user
	}
	return nil
}

// UserID extracts the user UUID from the verified JWT in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
