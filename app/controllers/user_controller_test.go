package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StefanHaring/InkPress/app/models"
)

type stubUserRepo struct {
	users map[string]models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]models.User)}
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		found := u
		return &found, nil
	}
	return nil, nil
}

func (r *stubUserRepo) CreateIfAbsent(user *models.User) (bool, error) {
	if _, ok := r.users[user.ID]; ok {
		return false, nil
	}
	r.users[user.ID] = *user
	return true, nil
}

func newUserTestApp(repo *stubUserRepo, userID string) *fiber.App {
	app := fiber.New()
	app.Use(forceIdentity(userID))
	uc := NewUserController(repo)
	app.Post("/api/v1/users/sync", uc.HandleSync)
	return app
}

func TestHandleSyncRequiresAuth(t *testing.T) {
	app := newUserTestApp(newStubUserRepo(), "")

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/users/sync", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleSyncIsIdempotent(t *testing.T) {
	repo := newStubUserRepo()
	app := newUserTestApp(repo, "user-9")

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/users/sync", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["created"])

	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/users/sync", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["created"])

	require.Len(t, repo.users, 1)
}
