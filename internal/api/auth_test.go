package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipehub/backend/internal/models"
)

func TestCreateUserSuccess(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"name":     "Carlos Test",
		"email":    "test@email.test",
		"password": "testpass",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", payload, "")

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Carlos Test", response["name"])
	assert.Equal(t, "test@email.test", response["email"])
	assert.NotContains(t, response, "password")
	assert.NotContains(t, response, "password_hash")

	var user models.User
	require.NoError(t, testDB.DB.Where("email = ?", "test@email.test").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"name":     "Carlos Test",
		"email":    "test@email.test",
		"password": "testpass",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = PerformRequest(router, "POST", "/api/v1/users", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	testDB.DB.Model(&models.User{}).Where("email = ?", "test@email.test").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserPasswordTooShort(t *testing.T) {
	router, testDB := SetupTestRouter(t)

	payload := map[string]interface{}{
		"name":     "Carlos Test",
		"email":    "test@email.test",
		"password": "te",
	}
	w := PerformRequest(router, "POST", "/api/v1/users", payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	testDB.DB.Model(&models.User{}).Where("email = ?", "test@email.test").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateTokenForUser(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")

	payload := map[string]interface{}{
		"email":    "carlos@example.com",
		"password": "testpass123",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", payload, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response, "token")
	assert.NotEmpty(t, response["token"])
}

func TestCreateTokenInvalidCredentials(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass")

	payload := map[string]interface{}{
		"email":    "carlos@example.com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "token")
}

func TestCreateTokenNoUser(t *testing.T) {
	router, _ := SetupTestRouter(t)

	payload := map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "testpass1234",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "token")
}

func TestCreateTokenMissingField(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass")

	payload := map[string]interface{}{
		"email":    "carlos@example.com",
		"password": "",
	}
	w := PerformRequest(router, "POST", "/api/v1/users/token", payload, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "token")
}

func TestTokenStableAcrossLogins(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")

	payload := map[string]interface{}{
		"email":    "carlos@example.com",
		"password": "testpass123",
	}

	w := PerformRequest(router, "POST", "/api/v1/users/token", payload, "")
	require.Equal(t, http.StatusOK, w.Code)
	var first map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = PerformRequest(router, "POST", "/api/v1/users/token", payload, "")
	require.Equal(t, http.StatusOK, w.Code)
	var second map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.Equal(t, first["token"], second["token"])
}
