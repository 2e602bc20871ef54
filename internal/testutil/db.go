// Package testutil provides a migrated in-memory database and token service
// for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/monocle-dev/planboard/db"
	"github.com/monocle-dev/planboard/internal/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TokenSecret = "test-secret"

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	database, err := db.Connect(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	database.Logger = logger.Discard

	if err := db.MigrateDatabase(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(database); err != nil {
			t.Errorf("close test database: %v", err)
		}
	})

	return database
}

func NewTokens(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(TokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	return tokens
}
