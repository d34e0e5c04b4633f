package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

const userContextKey = "user"

// Authenticate resolves an Authorization header value to an active user.
// Two schemes are accepted: "Token <key>" for stored API keys and "Bearer <jwt>".
func Authenticate(db *gorm.DB, header string) (models.User, error) {
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return models.User{}, utils.ErrUnauthenticated
	}

	var user models.User
	switch strings.ToLower(parts[0]) {
	case "token":
		if len(parts) == 1 {
			return models.User{}, utils.ErrTokenNoKey
		}
		if len(parts) > 2 {
			return models.User{}, utils.ErrTokenHasSpaces
		}
		var token models.Token
		err := db.Preload("User").Where(&models.Token{Key: parts[1]}).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, utils.ErrInvalidToken
		}
		if err != nil {
			return models.User{}, fmt.Errorf("load token: %w", err)
		}
		user = token.User
	case "bearer":
		if len(parts) != 2 {
			return models.User{}, utils.ErrInvalidToken
		}
		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			return models.User{}, err
		}
		err = db.First(&user, claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, utils.ErrInvalidToken
		}
		if err != nil {
			return models.User{}, fmt.Errorf("load user: %w", err)
		}
	default:
		return models.User{}, utils.ErrUnauthenticated
	}

	if !user.IsActive {
		return models.User{}, utils.ErrInactiveUser
	}
	return user, nil
}

// TokenAuthMiddleware rejects the request with 401 unless it carries valid credentials.
func TokenAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return authMiddleware(db, func(c *gin.Context) string {
		return c.GetHeader("Authorization")
	})
}

// WebSocketAuthMiddleware also accepts the token key as ?token=, since browsers
// cannot set headers on a WebSocket handshake.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return authMiddleware(db, func(c *gin.Context) string {
		if header := c.GetHeader("Authorization"); header != "" {
			return header
		}
		if key := c.Query("token"); key != "" {
			return "Token " + key
		}
		return ""
	})
}

func authMiddleware(db *gorm.DB, credentials func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := Authenticate(db.WithContext(c.Request.Context()), credentials(c))
		if err != nil {
			if utils.DefaultErrorMapper.Map(err).Status == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Token")
			}
			utils.RespondError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by the auth middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
