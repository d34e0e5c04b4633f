package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/serializers"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// bindRequest decodes the body into obj and writes a 400 on failure.
func bindRequest(c *gin.Context, obj interface{}) bool {
	if err := serializers.Bind(c, obj); err != nil {
		respondInvalid(c, err)
		return false
	}
	return true
}

func respondInvalid(c *gin.Context, err error) {
	var fe serializers.FieldErrors
	if errors.As(err, &fe) {
		utils.RespondValidation(c, fe)
		return
	}
	var pe *serializers.ParseError
	if errors.As(err, &pe) {
		utils.RespondDetail(c, http.StatusBadRequest, pe.Error())
		return
	}
	utils.RespondError(c, err)
}

// parseID reads a positive integer path parameter. Anything else is treated as
// an unmatched route.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, utils.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

func requireUser(c *gin.Context) (models.User, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.Header("WWW-Authenticate", "Token")
		utils.RespondError(c, utils.ErrUnauthenticated)
	}
	return user, ok
}
