package project

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unishowcase/server/internal/model"
	"github.com/unishowcase/server/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(s *Service, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	h := NewHandler(s)
	h.RegisterRoutes(api)
	h.RegisterProtectedRoutes(api)
	return r
}

func TestHandler_Get(t *testing.T) {
	s, repo, badges := newTestService()
	ownerID := uuid.New()
	p := &model.Project{ID: uuid.New(), UserID: ownerID, Title: "Lab Scheduler", Views: 100}
	repo.On("IncrementViews", mock.Anything, p.ID).Return(p, nil)
	badges.On("CheckPopularProject", mock.Anything, ownerID, p.ID, int64(100)).Return(true, nil)

	w := httptest.NewRecorder()
	setupRouter(s, uuid.Nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+p.ID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ownerID.String(), resp["ownerId"])
	assert.Equal(t, "popular-project", resp["ownerBadge"])
}

func TestHandler_Get_NotFound(t *testing.T) {
	s, repo, _ := newTestService()
	id := uuid.New()
	repo.On("IncrementViews", mock.Anything, id).Return(nil, nil)

	w := httptest.NewRecorder()
	setupRouter(s, uuid.Nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found","code":"project_not_found"}`, w.Body.String())
}

func TestHandler_Publish(t *testing.T) {
	s, repo, badges := newTestService()
	ownerID := uuid.New()
	p := &model.Project{ID: uuid.New(), UserID: ownerID, IsDraft: true}
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Publish", mock.Anything, p.ID).Return(true, nil)
	badges.On("CheckFirstProject", mock.Anything, ownerID, p.ID).Return(false, nil)

	w := httptest.NewRecorder()
	setupRouter(s, ownerID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+p.ID.String()+"/publish", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project published successfully","newBadges":null}`, w.Body.String())
}

func TestHandler_Publish_Errors(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name   string
		caller uuid.UUID
		draft  bool
		status int
		body   string
	}{
		{"not owner", uuid.New(), true, http.StatusForbidden, `{"error":"Forbidden","code":"forbidden"}`},
		{"already published", ownerID, false, http.StatusBadRequest, `{"error":"Project is already published","code":"already_published"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _ := newTestService()
			p := &model.Project{ID: uuid.New(), UserID: ownerID, IsDraft: tt.draft}
			repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
			repo.On("Publish", mock.Anything, p.ID).Return(tt.draft, nil)

			w := httptest.NewRecorder()
			setupRouter(s, tt.caller).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+p.ID.String()+"/publish", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
