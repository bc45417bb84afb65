package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/backend/internal/models"
)

func TestTagsRequireAuth(t *testing.T) {
	router, _ := SetupTestRouter(t)

	w := PerformRequest(router, "GET", "/api/v1/tags", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTagsOrderedByName(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	createTestTag(t, testDB, user.ID, "Vegan")
	createTestTag(t, testDB, user.ID, "Dessert")

	w := PerformRequest(router, "GET", "/api/v1/tags", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)

	var items []TagResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Dessert", items[0].Name)
	assert.Equal(t, "Vegan", items[1].Name)
}

func TestListTagsLimitedToOwner(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	other := CreateTestUser(t, testDB, "Other User", "other@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	createTestTag(t, testDB, user.ID, "Mine")
	createTestTag(t, testDB, other.ID, "Theirs")

	w := PerformRequest(router, "GET", "/api/v1/tags", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)

	var items []TagResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Mine", items[0].Name)
}

func TestCreateTag(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	payload := map[string]interface{}{"name": "Comfort food"}
	w := PerformRequest(router, "POST", "/api/v1/tags", payload, token)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created TagResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Comfort food", created.Name)

	var stored models.Tag
	require.NoError(t, testDB.DB.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestCreateTagDuplicateName(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	createTestTag(t, testDB, user.ID, "Dessert")

	payload := map[string]interface{}{"name": "Dessert"}
	w := PerformRequest(router, "POST", "/api/v1/tags", payload, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	testDB.DB.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateTagSameNameDifferentUsers(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	other := CreateTestUser(t, testDB, "Other User", "other@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	createTestTag(t, testDB, other.ID, "Dessert")

	payload := map[string]interface{}{"name": "Dessert"}
	w := PerformRequest(router, "POST", "/api/v1/tags", payload, token)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateTagMissingName(t *testing.T) {
	router, testDB := SetupTestRouter(t)
	user := CreateTestUser(t, testDB, "Carlos Test", "carlos@example.com", "testpass123")
	token := TokenFor(t, testDB, user)

	w := PerformRequest(router, "POST", "/api/v1/tags", map[string]interface{}{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
