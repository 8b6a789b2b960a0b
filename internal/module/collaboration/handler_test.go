package collaboration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/database"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(f *fixture, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	NewHandler(f.service).RegisterRoutes(api)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_Create(t *testing.T) {
	ownerID := uuid.New()
	requesterID := uuid.New()

	t.Run("created", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		f.repo.On("HasPending", mock.Anything, project.ID, requesterID).Return(false, nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(database.Inserted, nil)

		w := doJSON(setupRouter(f, requesterID), http.MethodPost,
			"/api/v1/projects/"+project.ID.String()+"/collaborate", validCreateRequest())

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Collaboration request sent successfully", resp["message"])
		assert.NotEmpty(t, resp["requestId"])
	})

	t.Run("missing skills", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		f.repo.On("HasPending", mock.Anything, project.ID, requesterID).Return(false, nil)

		w := doJSON(setupRouter(f, requesterID), http.MethodPost,
			"/api/v1/projects/"+project.ID.String()+"/collaborate",
			map[string]any{"message": "I would love to help with this project."})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "Message and at least one skill are required", resp.Error)
		assert.Equal(t, "skills_required", resp.Code)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown project with empty body", func(t *testing.T) {
		f := newFixture()
		projectID := uuid.New()
		f.projects.On("GetByID", mock.Anything, projectID).Return(nil, nil)

		w := doJSON(setupRouter(f, requesterID), http.MethodPost,
			"/api/v1/projects/"+projectID.String()+"/collaborate", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "Project not found", resp.Error)
		assert.Equal(t, "project_not_found", resp.Code)
	})

	t.Run("own project with empty object", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		w := doJSON(setupRouter(f, ownerID), http.MethodPost,
			"/api/v1/projects/"+project.ID.String()+"/collaborate", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot request to join your own project", decodeError(t, w).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture()
		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/projects/"+uuid.NewString()+"/collaborate", strings.NewReader(`{"skills":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(f, requesterID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_request", decodeError(t, w).Code)
		f.projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("duplicate pending", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		f.repo.On("HasPending", mock.Anything, project.ID, requesterID).Return(true, nil)

		w := doJSON(setupRouter(f, requesterID), http.MethodPost,
			"/api/v1/projects/"+project.ID.String()+"/collaborate", validCreateRequest())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "You already have a pending request for this project", resp.Error)
		assert.Equal(t, "pending_request_exists", resp.Code)
	})

	t.Run("invalid project id", func(t *testing.T) {
		f := newFixture()
		w := doJSON(setupRouter(f, requesterID), http.MethodPost,
			"/api/v1/projects/not-a-uuid/collaborate", validCreateRequest())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid project ID", decodeError(t, w).Error)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture()
		w := doJSON(setupRouter(f, uuid.Nil), http.MethodPost,
			"/api/v1/projects/"+uuid.NewString()+"/collaborate", validCreateRequest())

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Review(t *testing.T) {
	ownerID := uuid.New()

	t.Run("rejected", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		req := pendingRequest(project.ID, uuid.New())
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		f.repo.On("GetByID", mock.Anything, project.ID, req.ID).Return(req, nil)
		f.repo.On("TransitionFromPending", mock.Anything, mock.Anything).Return(true, nil)

		w := doJSON(setupRouter(f, ownerID), http.MethodPatch,
			"/api/v1/projects/"+project.ID.String()+"/collaborate/"+req.ID.String(),
			ReviewRequest{Action: ActionReject})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp ReviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Request rejected successfully", resp.Message)
		assert.Equal(t, model.CollaborationStatusRejected, resp.Status)
	})

	t.Run("already reviewed", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		req := pendingRequest(project.ID, uuid.New())
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		f.repo.On("GetByID", mock.Anything, project.ID, req.ID).Return(req, nil)
		f.repo.On("TransitionFromPending", mock.Anything, mock.Anything).Return(false, nil)

		w := doJSON(setupRouter(f, ownerID), http.MethodPatch,
			"/api/v1/projects/"+project.ID.String()+"/collaborate/"+req.ID.String(),
			ReviewRequest{Action: ActionAccept})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "This request has already been reviewed", decodeError(t, w).Error)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture()
		project := openProject(ownerID)
		f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		w := doJSON(setupRouter(f, uuid.New()), http.MethodPatch,
			"/api/v1/projects/"+project.ID.String()+"/collaborate/"+uuid.NewString(),
			ReviewRequest{Action: ActionAccept})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing action", func(t *testing.T) {
		f := newFixture()
		w := doJSON(setupRouter(f, ownerID), http.MethodPatch,
			"/api/v1/projects/"+uuid.NewString()+"/collaborate/"+uuid.NewString(),
			map[string]string{"note": "hi"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "invalid_request", resp.Code)
		assert.Equal(t, `Invalid action. Must be "accept" or "reject"`, resp.Error)
	})
}

func TestHandler_Cancel(t *testing.T) {
	projectID := uuid.New()
	requesterID := uuid.New()

	f := newFixture()
	req := pendingRequest(projectID, requesterID)
	f.repo.On("GetByID", mock.Anything, projectID, req.ID).Return(req, nil)
	f.repo.On("DeletePending", mock.Anything, req.ID, requesterID).Return(true, nil)

	w := doJSON(setupRouter(f, requesterID), http.MethodDelete,
		"/api/v1/projects/"+projectID.String()+"/collaborate/"+req.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Request cancelled successfully"}`, w.Body.String())
}

func TestHandler_Status(t *testing.T) {
	projectID := uuid.New()
	userID := uuid.New()

	t.Run("no request", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindLatest", mock.Anything, projectID, userID).Return(nil, nil)

		w := doJSON(setupRouter(f, userID), http.MethodGet,
			"/api/v1/projects/"+projectID.String()+"/collaborate/status", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"hasRequest":false,"request":null}`, w.Body.String())
	})

	t.Run("has request", func(t *testing.T) {
		f := newFixture()
		req := pendingRequest(projectID, userID)
		f.repo.On("FindLatest", mock.Anything, projectID, userID).Return(req, nil)

		w := doJSON(setupRouter(f, userID), http.MethodGet,
			"/api/v1/projects/"+projectID.String()+"/collaborate/status", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.HasRequest)
		require.NotNil(t, resp.Request)
		assert.Equal(t, req.ID, resp.Request.ID)
		assert.Equal(t, model.CollaborationStatusPending, resp.Request.Status)
	})
}

func TestHandler_ListPending(t *testing.T) {
	ownerID := uuid.New()
	f := newFixture()
	project := openProject(ownerID)
	req := pendingRequest(project.ID, uuid.New())
	req.Project = project
	req.Requester = &model.User{ID: req.RequesterID, Name: "Ann", Email: "ann@uni.edu"}

	f.projects.On("ListIDsByOwner", mock.Anything, ownerID).Return([]uuid.UUID{project.ID}, nil)
	f.repo.On("ListPendingByProjects", mock.Anything, []uuid.UUID{project.ID}).
		Return([]*model.CollaborationRequest{req}, nil)

	w := doJSON(setupRouter(f, ownerID), http.MethodGet, "/api/v1/collaborate/pending", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp PendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, "Campus Navigator", resp.Requests[0].ProjectTitle)
	assert.Equal(t, "Ann", resp.Requests[0].Requester.Name)
	assert.Empty(t, resp.Requests[0].Requester.Email)
}
