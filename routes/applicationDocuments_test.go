package routes

import (
	"net/http"
	"testing"

	"homelet-server/models"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnlyApplicantCanUploadDocuments(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	path := applicationPath(application.ID) + "/documents"
	body := iris.Map{"documentType": "bank_statement", "data": "aGVsbG8=", "description": "statement"}

	resp := doJSON(t, app, http.MethodPost, path, signTestToken(owner), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(t, app, http.MethodPost, path, signTestToken(admin), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doJSON(t, app, http.MethodPost, path, signTestToken(renter), body)
	require.Equal(t, http.StatusCreated, resp.Code)

	var document models.ApplicationDocument
	decodeJSON(t, resp, &document)
	assert.Equal(t, "bank_statement", document.DocumentType)
	assert.NotEmpty(t, document.FileURL)
}

func TestDocumentUploadRejectsUnknownType(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	resp := doJSON(t, app, http.MethodPost, applicationPath(application.ID)+"/documents",
		signTestToken(renter), iris.Map{"documentType": "selfie", "data": "aGVsbG8="})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDocumentListVisibility(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")
	outsider := createTestUser(t, models.RoleRenter, "outsider@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	path := applicationPath(application.ID) + "/documents"

	resp := doJSON(t, app, http.MethodPost, path, signTestToken(renter),
		iris.Map{"documentType": "id", "data": "aGVsbG8="})
	require.Equal(t, http.StatusCreated, resp.Code)

	for _, user := range []*models.User{renter, owner, admin} {
		resp = doJSON(t, app, http.MethodGet, path, signTestToken(user), nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var documents []models.ApplicationDocument
		decodeJSON(t, resp, &documents)
		assert.Len(t, documents, 1)
	}

	resp = doJSON(t, app, http.MethodGet, path, signTestToken(outsider), nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
