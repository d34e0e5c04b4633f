package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestMenuString(t *testing.T) {
	m := models.Menu{Title: "IceCream", Price: decimal.NewFromInt(80), Inventory: 100}
	assert.Equal(t, "IceCream: $80", m.String())
}

func TestMenuPersistsFixedPointPrice(t *testing.T) {
	db := setupTestDB(t)

	items := []models.Menu{
		{Title: "Pizza", Price: decimal.RequireFromString("10.99"), Inventory: 50},
		{Title: "Pasta", Price: decimal.RequireFromString("12.50"), Inventory: 30},
		{Title: "Salad", Price: decimal.RequireFromString("8.75"), Inventory: 25},
	}
	require.NoError(t, db.Create(&items).Error)

	var got []models.Menu
	require.NoError(t, db.Order("id").Find(&got).Error)
	require.Len(t, got, 3)
	assert.Equal(t, "10.99", got[0].Price.StringFixed(2))
	assert.Equal(t, "12.50", got[1].Price.StringFixed(2))
	assert.Equal(t, "Salad: $8.75", got[2].String())
}

func TestMenuInventoryUpdate(t *testing.T) {
	db := setupTestDB(t)

	m := models.Menu{Title: "Cake", Price: decimal.NewFromInt(50), Inventory: 50}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Model(&m).Update("inventory", 45).Error)

	var got models.Menu
	require.NoError(t, db.First(&got, m.ID).Error)
	assert.Equal(t, 45, got.Inventory)
}

func TestBookingDateRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)
	b := models.Booking{Name: "testuser", NoOfGuests: 4, BookingDate: date}
	require.NoError(t, db.Create(&b).Error)

	var got models.Booking
	require.NoError(t, db.First(&got, b.ID).Error)
	assert.Equal(t, "testuser", got.Name)
	assert.Equal(t, 4, got.NoOfGuests)
	assert.Equal(t, "2025-10-10", got.BookingDate.Format("2006-01-02"))
}

func TestTokenBelongsToUser(t *testing.T) {
	db := setupTestDB(t)

	u := models.User{Username: "alice", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&models.Token{Key: "k1", UserID: u.ID}).Error)

	var tok models.Token
	require.NoError(t, db.Preload("User").First(&tok, "key = ?", "k1").Error)
	assert.Equal(t, "alice", tok.User.Username)
	assert.False(t, tok.Created.IsZero())

	err := db.Create(&models.Token{Key: "k2", UserID: u.ID}).Error
	assert.Error(t, err, "one token per user")
}
