package routes

import (
	"net/http"
	"testing"

	"homelet-server/models"
	"homelet-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registerBody(email, role string) iris.Map {
	return iris.Map{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           email,
		"role":            role,
		"password":        "supersecret1",
		"passwordConfirm": "supersecret1",
	}
}

func TestRegisterCreatesRoleProfile(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("owner@example.com", "homeowner"))
	require.Equal(t, http.StatusOK, resp.Code)

	var owner models.User
	require.NoError(t, storage.DB.Where("email = ?", "owner@example.com").First(&owner).Error)
	assert.Equal(t, models.RoleHomeowner, owner.Role)

	var homeownerProfile models.HomeownerProfile
	assert.NoError(t, storage.DB.Where("user_id = ?", owner.ID).First(&homeownerProfile).Error)

	resp = doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("renter@example.com", "renter"))
	require.Equal(t, http.StatusOK, resp.Code)

	var renter models.User
	require.NoError(t, storage.DB.Where("email = ?", "renter@example.com").First(&renter).Error)

	var renterProfile models.RenterProfile
	assert.NoError(t, storage.DB.Where("user_id = ?", renter.ID).First(&renterProfile).Error)
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	body := registerBody("someone@example.com", "renter")
	body["passwordConfirm"] = "different123"

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("admin@example.com", "admin"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("dup@example.com", "renter"))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("dup@example.com", "renter"))
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	hashed, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{Email: "login@example.com", Password: string(hashed), Role: models.RoleRenter}
	require.NoError(t, storage.DB.Create(user).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/user/login", "",
		iris.Map{"email": "login@example.com", "password": "wrongpassword"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/user/login", "",
		iris.Map{"email": "login@example.com", "password": "rightpassword"})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRoleProfileEndpointsMatchRole(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", registerBody("owner@example.com", "homeowner"))
	require.Equal(t, http.StatusOK, resp.Code)

	var owner models.User
	require.NoError(t, storage.DB.Where("email = ?", "owner@example.com").First(&owner).Error)
	token := signTestToken(&owner)

	resp = doJSON(t, app, http.MethodGet, "/api/user/homeowner/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	// A homeowner has no renter profile: created-by-role at registration.
	resp = doJSON(t, app, http.MethodGet, "/api/user/renter/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
