package routes

import (
	"net/http"
	"testing"

	"homelet-server/models"
	"homelet-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApplicationRequiresRenterRole(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")

	body := iris.Map{"propertyID": property.ID, "moveInDate": "2026-10-01"}

	resp := doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(owner), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")
	resp = doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(admin), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	resp = doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter), body)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.RentalApplication
	decodeJSON(t, resp, &created)
	assert.Equal(t, models.ApplicationStatusPending, created.Status)
	assert.Nil(t, created.ReviewedAt)
	assert.Nil(t, created.ReviewedByID)
}

func TestCreateApplicationDuplicateConflict(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")

	body := iris.Map{"propertyID": property.ID, "moveInDate": "2026-10-01", "message": "first"}

	resp := doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter), body)
	require.Equal(t, http.StatusCreated, resp.Code)

	body["message"] = "second"
	resp = doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter), body)
	assert.Equal(t, http.StatusConflict, resp.Code)

	// The first submission is unaffected by the rejected duplicate.
	var applications []models.RentalApplication
	require.NoError(t, storage.DB.Where("applicant_id = ?", renter.ID).Find(&applications).Error)
	require.Len(t, applications, 1)
	assert.Equal(t, "first", applications[0].Message)
	assert.Equal(t, models.ApplicationStatusPending, applications[0].Status)
}

func TestCreateApplicationUnknownProperty(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	body := iris.Map{"propertyID": 9999, "moveInDate": "2026-10-01"}

	resp := doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter), body)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateApplicationWithDocuments(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")

	body := iris.Map{
		"propertyID": property.ID,
		"moveInDate": "2026-10-01",
		"documents": []iris.Map{
			{"documentType": "pay_stub", "data": "aGVsbG8=", "description": "July pay stub"},
			{"documentType": "id", "data": "aGVsbG8="},
		},
	}

	resp := doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter), body)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.RentalApplication
	decodeJSON(t, resp, &created)

	var documents []models.ApplicationDocument
	require.NoError(t, storage.DB.Where("application_id = ?", created.ID).Find(&documents).Error)
	assert.Len(t, documents, 2)

	// A bad document type rejects the whole submission; nothing is persisted.
	body["documents"] = []iris.Map{{"documentType": "passport_scan", "data": "aGVsbG8="}}
	renter2 := createTestUser(t, models.RoleRenter, "renter2@example.com")
	resp = doJSON(t, app, http.MethodPost, "/api/applications/create", signTestToken(renter2), body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var count int64
	storage.DB.Model(&models.RentalApplication{}).Where("applicant_id = ?", renter2.ID).Count(&count)
	assert.Zero(t, count)
}

func TestApplicationVisibilityScoping(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	otherOwner := createTestUser(t, models.RoleHomeowner, "other-owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	otherRenter := createTestUser(t, models.RoleRenter, "other-renter@example.com")
	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")

	property := createTestProperty(t, owner.ID, "Downtown Flat")
	otherProperty := createTestProperty(t, otherOwner.ID, "Uptown Loft")

	application := createTestApplication(t, property.ID, renter.ID)
	createTestApplication(t, otherProperty.ID, otherRenter.ID)

	// Renter sees exactly their own application.
	var listed []models.RentalApplication
	resp := doJSON(t, app, http.MethodGet, "/api/applications/", signTestToken(renter), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, application.ID, listed[0].ID)

	// An unrelated renter sees an empty list.
	resp = doJSON(t, app, http.MethodGet, "/api/applications/", signTestToken(otherRenter), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &listed)
	assert.Empty(t, listed)

	// Homeowner sees only applications on their own listings.
	resp = doJSON(t, app, http.MethodGet, "/api/applications/", signTestToken(owner), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, application.ID, listed[0].ID)

	// Admin sees everything.
	resp = doJSON(t, app, http.MethodGet, "/api/applications/", signTestToken(admin), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &listed)
	assert.Len(t, listed, 2)
}

func TestApplicationDetailMasksOutOfScopeAsNotFound(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	otherRenter := createTestUser(t, models.RoleRenter, "other-renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	path := applicationPath(application.ID)

	resp := doJSON(t, app, http.MethodGet, path, signTestToken(renter), nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, app, http.MethodGet, path, signTestToken(owner), nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Probing someone else's id reads as absent, never as forbidden.
	resp = doJSON(t, app, http.MethodGet, path, signTestToken(otherRenter), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateStatusAuthorization(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	otherOwner := createTestUser(t, models.RoleHomeowner, "other-owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	path := applicationPath(application.ID) + "/update"
	body := iris.Map{"status": "approved"}

	// The applicant gets an explicit permission failure on the write path.
	resp := doJSON(t, app, http.MethodPatch, path, signTestToken(renter), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// A homeowner who doesn't own the listing cannot even see the id.
	resp = doJSON(t, app, http.MethodPatch, path, signTestToken(otherOwner), body)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The listing owner approves; reviewer stamp and timestamp land together.
	resp = doJSON(t, app, http.MethodPatch, path, signTestToken(owner), body)
	require.Equal(t, http.StatusOK, resp.Code)

	var updated models.RentalApplication
	require.NoError(t, storage.DB.First(&updated, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedByID)
	assert.Equal(t, owner.ID, *updated.ReviewedByID)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestUpdateStatusByAdmin(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	resp := doJSON(t, app, http.MethodPut, applicationPath(application.ID)+"/update",
		signTestToken(admin), iris.Map{"status": "rejected"})
	require.Equal(t, http.StatusOK, resp.Code)

	var updated models.RentalApplication
	require.NoError(t, storage.DB.First(&updated, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
	require.NotNil(t, updated.ReviewedByID)
	assert.Equal(t, admin.ID, *updated.ReviewedByID)
}

// Decision under test: terminal states are immutable. The source system
// allowed re-transitioning an already-reviewed application; this
// implementation closes that hole and answers a repeat review with a
// conflict instead.
func TestUpdateStatusTerminalStateImmutable(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	path := applicationPath(application.ID) + "/update"

	resp := doJSON(t, app, http.MethodPatch, path, signTestToken(owner), iris.Map{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, app, http.MethodPatch, path, signTestToken(owner), iris.Map{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	var unchanged models.RentalApplication
	require.NoError(t, storage.DB.First(&unchanged, application.ID).Error)
	assert.Equal(t, models.ApplicationStatusApproved, unchanged.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	property := createTestProperty(t, owner.ID, "Downtown Flat")
	application := createTestApplication(t, property.ID, renter.ID)

	resp := doJSON(t, app, http.MethodPatch, applicationPath(application.ID)+"/update",
		signTestToken(owner), iris.Map{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestApplicationStatsScoped(t *testing.T) {
	resetDB(t)
	app := buildTestApp()

	owner := createTestUser(t, models.RoleHomeowner, "owner@example.com")
	otherOwner := createTestUser(t, models.RoleHomeowner, "other-owner@example.com")
	renter := createTestUser(t, models.RoleRenter, "renter@example.com")
	otherRenter := createTestUser(t, models.RoleRenter, "other-renter@example.com")
	admin := createTestUser(t, models.RoleAdmin, "admin@example.com")

	property := createTestProperty(t, owner.ID, "Downtown Flat")
	otherProperty := createTestProperty(t, otherOwner.ID, "Uptown Loft")

	a1 := createTestApplication(t, property.ID, renter.ID)
	createTestApplication(t, otherProperty.ID, renter.ID)
	createTestApplication(t, property.ID, otherRenter.ID)

	require.NoError(t, storage.DB.Model(a1).Update("status", models.ApplicationStatusApproved).Error)

	type stats struct {
		Total    int64 `json:"total_applications"`
		Pending  int64 `json:"pending_applications"`
		Approved int64 `json:"approved_applications"`
		Rejected int64 `json:"rejected_applications"`
	}

	var s stats
	resp := doJSON(t, app, http.MethodGet, "/api/applications/stats", signTestToken(owner), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &s)
	assert.Equal(t, stats{Total: 2, Pending: 1, Approved: 1}, s)

	resp = doJSON(t, app, http.MethodGet, "/api/applications/stats", signTestToken(renter), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &s)
	assert.Equal(t, stats{Total: 2, Pending: 1, Approved: 1}, s)

	resp = doJSON(t, app, http.MethodGet, "/api/applications/stats", signTestToken(admin), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &s)
	assert.Equal(t, stats{Total: 3, Pending: 2, Approved: 1}, s)
}
