package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/internal/model"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}

func TestMigrateAndReset(t *testing.T) {
	gormDB, err := Open(DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))
	for _, table := range []interface{}{&model.User{}, &model.Todo{}, &model.AllowlistedJWT{}} {
		assert.True(t, gormDB.Migrator().HasTable(table))
	}

	require.NoError(t, Reset(gormDB))
	for _, table := range []interface{}{&model.User{}, &model.Todo{}, &model.AllowlistedJWT{}} {
		assert.False(t, gormDB.Migrator().HasTable(table))
	}
}
