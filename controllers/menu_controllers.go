package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/serializers"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewMenuController(db *gorm.DB, pub events.Publisher) *MenuController {
	return &MenuController{DB: db, Events: pub}
}

// GetAllMenus returns every menu item.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.WithContext(c.Request.Context()).Order("id").Find(&menus).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("list menus: %w", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, serializers.NewMenuListResponse(menus))
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req serializers.MenuRequest
	if !bindRequest(c, &req) {
		return
	}
	fields, err := req.Validate(false)
	if err != nil {
		respondInvalid(c, err)
		return
	}

	var menu models.Menu
	fields.Apply(&menu)
	if err := mc.DB.WithContext(c.Request.Context()).Create(&menu).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("create menu: %w", err))
		return
	}

	resp := serializers.NewMenuResponse(menu)
	utils.InfoLogger.WithField("menu_id", menu.ID).Info("menu created")
	events.Emit(c.Request.Context(), mc.Events, events.New(events.EntityMenu, events.ActionCreated, menu.ID, "", resp))
	utils.RespondJSON(c, http.StatusCreated, resp)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, ok := parseID(c, "menu_id")
	if !ok {
		return
	}

	var menu models.Menu
	if err := mc.DB.WithContext(c.Request.Context()).First(&menu, id).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, serializers.NewMenuResponse(menu))
}

// UpdateMenu replaces all fields of an existing item.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	mc.update(c, false)
}

// PatchMenu updates only the fields present in the body.
func (mc *MenuController) PatchMenu(c *gin.Context) {
	mc.update(c, true)
}

// update looks the row up before validating, so a missing id is a 404 even
// when the body is invalid.
func (mc *MenuController) update(c *gin.Context, partial bool) {
	id, ok := parseID(c, "menu_id")
	if !ok {
		return
	}

	db := mc.DB.WithContext(c.Request.Context())
	var menu models.Menu
	if err := db.First(&menu, id).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	var req serializers.MenuRequest
	if !bindRequest(c, &req) {
		return
	}
	fields, err := req.Validate(partial)
	if err != nil {
		respondInvalid(c, err)
		return
	}

	fields.Apply(&menu)
	if err := db.Save(&menu).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("update menu %d: %w", id, err))
		return
	}

	resp := serializers.NewMenuResponse(menu)
	events.Emit(c.Request.Context(), mc.Events, events.New(events.EntityMenu, events.ActionUpdated, menu.ID, "", resp))
	utils.RespondJSON(c, http.StatusOK, resp)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := parseID(c, "menu_id")
	if !ok {
		return
	}

	result := mc.DB.WithContext(c.Request.Context()).Delete(&models.Menu{}, id)
	if result.Error != nil {
		utils.RespondError(c, fmt.Errorf("delete menu %d: %w", id, result.Error))
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, utils.ErrNotFound)
		return
	}

	utils.InfoLogger.WithField("menu_id", id).Info("menu deleted")
	events.Emit(c.Request.Context(), mc.Events, events.New(events.EntityMenu, events.ActionDeleted, id, "", gin.H{"id": id}))
	c.Status(http.StatusNoContent)
}
