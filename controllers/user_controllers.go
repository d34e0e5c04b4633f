package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/serializers"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgBadCredentials = "Unable to log in with provided credentials."
	msgUsernameTaken  = "A user with that username already exists."
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register creates an active user.
func (uc *UserController) Register(c *gin.Context) {
	var req serializers.RegisterRequest
	if !bindRequest(c, &req) {
		return
	}

	db := uc.DB.WithContext(c.Request.Context())
	var existing int64
	if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&existing).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("check username: %w", err))
		return
	}
	if existing > 0 {
		utils.RespondValidation(c, serializers.FieldErrors{"username": {msgUsernameTaken}})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, fmt.Errorf("hash password: %w", err))
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}
	// A concurrent registration can still win between the count and the insert.
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondValidation(c, serializers.FieldErrors{"username": {msgUsernameTaken}})
			return
		}
		utils.RespondError(c, fmt.Errorf("create user: %w", err))
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Username)
	utils.RespondJSON(c, http.StatusCreated, serializers.NewUserResponse(user))
}

// ObtainToken returns the caller's API key, creating it on first use.
func (uc *UserController) ObtainToken(c *gin.Context) {
	user, ok := uc.checkCredentials(c)
	if !ok {
		return
	}

	key, err := utils.GenerateKey()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var token models.Token
	err = uc.DB.WithContext(c.Request.Context()).
		Where(models.Token{UserID: user.ID}).
		Attrs(models.Token{Key: key}).
		FirstOrCreate(&token).Error
	if err != nil {
		utils.RespondError(c, fmt.Errorf("issue token: %w", err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{"token": token.Key})
}

// ObtainJWT returns a signed, short-lived access token.
func (uc *UserController) ObtainJWT(c *gin.Context) {
	user, ok := uc.checkCredentials(c)
	if !ok {
		return
	}

	access, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"access": access})
}

// Logout revokes the caller's API key.
func (uc *UserController) Logout(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := uc.DB.WithContext(c.Request.Context()).Where("user_id = ?", user.ID).Delete(&models.Token{}).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("delete token: %w", err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, serializers.NewUserResponse(user))
}

// checkCredentials answers unknown users, wrong passwords and inactive users identically.
func (uc *UserController) checkCredentials(c *gin.Context) (models.User, bool) {
	var req serializers.CredentialsRequest
	if !bindRequest(c, &req) {
		return models.User{}, false
	}

	badCredentials := func() {
		utils.RespondValidation(c, serializers.FieldErrors{"non_field_errors": {msgBadCredentials}})
	}

	var user models.User
	err := uc.DB.WithContext(c.Request.Context()).Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		badCredentials()
		return models.User{}, false
	}
	if err != nil {
		utils.RespondError(c, fmt.Errorf("load user: %w", err))
		return models.User{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil || !user.IsActive {
		badCredentials()
		return models.User{}, false
	}
	return user, true
}
