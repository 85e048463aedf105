package database

import (
	"context"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"

	"lunchlink/internal/models"
)

func newTestBackend(t *testing.T) *GormBackend {
	t.Helper()
	conn, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.AutoMigrate(
		&models.MasterFoodItem{},
		&models.AppConfig{},
	).Error)
	return NewGormBackend(conn)
}

func TestFetchAppConfig_EmptyTable(t *testing.T) {
	backend := newTestBackend(t)

	config, err := backend.FetchAppConfig(context.Background())
	require.NoError(t, err)
	require.Nil(t, config)
}

func TestFetchAppConfig_RoundTrip(t *testing.T) {
	backend := newTestBackend(t)

	saved := models.AppConfig{
		ID:              models.AppConfigID,
		CompanyName:     "Acme",
		OrderCutoffTime: "10:30",
		GuestAccessMode: models.GuestAccessOpen,
		GuestPasscode:   "GUEST-1234",
	}
	require.NoError(t, backend.SaveAppConfig(context.Background(), &saved))

	config, err := backend.FetchAppConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, config)
	require.Equal(t, "Acme", config.CompanyName)
	require.Equal(t, "10:30", config.OrderCutoffTime)
	require.Equal(t, "GUEST-1234", config.GuestPasscode)
}

func TestSaveMasterItem_UpdatesInPlace(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	item := models.MasterFoodItem{ID: "item-1", Name: "Lentil Soup", Calories: 300}
	require.NoError(t, backend.SaveMasterItem(ctx, &item))

	// a second save with the same id must update the row, not add one
	item.Calories = 320
	require.NoError(t, backend.SaveMasterItem(ctx, &item))

	items, err := backend.FetchMasterItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 320, items[0].Calories)
}
