package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func userTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-for-unit-tests",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4, // Minimum cost keeps the tests fast
		},
	}
}

func mockUserDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:           "cashier@example.com",
		Password:        "cashier123",
		ConfirmPassword: "cashier123",
		DisplayName:     "Test Cashier",
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	db, mock := mockUserDB(t)
	svc := NewService(db, userTestConfig())

	req := registerRequest()
	req.ConfirmPassword = "something-else"

	_, err := svc.Register(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, mock := mockUserDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "cashier@example.com"))

	svc := NewService(db, userTestConfig())

	_, err := svc.Register(registerRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterSurfacesLookupFailure(t *testing.T) {
	db, mock := mockUserDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(fmt.Errorf("connection refused"))

	svc := NewService(db, userTestConfig())

	// A broken connection must never read as "email is free"
	_, err := svc.Register(registerRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check for existing user")
	assert.NoError(t, mock.ExpectationsWereMet())
}
