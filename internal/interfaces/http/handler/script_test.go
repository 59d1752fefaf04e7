package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts-script-api/internal/application/script"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
)

type fakeScriptRepo struct {
	scripts map[string]*entity.GeneratedScript
}

func (f *fakeScriptRepo) Create(_ context.Context, s *entity.GeneratedScript) error {
	f.scripts[s.ID] = s
	return nil
}

func (f *fakeScriptRepo) GetByID(_ context.Context, id string) (*entity.GeneratedScript, error) {
	return f.scripts[id], nil
}

func (f *fakeScriptRepo) ListByUser(_ context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedScript], error) {
	var items []*entity.GeneratedScript
	for _, s := range f.scripts {
		if s.UserID == userID {
			items = append(items, s)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.UserSession
}

func (f *fakeSessionRepo) Upsert(_ context.Context, s *entity.UserSession) error {
	f.sessions[s.UserID] = s
	return nil
}

func (f *fakeSessionRepo) GetByUserID(_ context.Context, userID string) (*entity.UserSession, error) {
	return f.sessions[userID], nil
}

func (f *fakeSessionRepo) IncrementScriptCount(_ context.Context, userID string) error {
	if s, ok := f.sessions[userID]; ok {
		s.ScriptCount++
	}
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeScriptRepo, *fakeSessionRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scripts := &fakeScriptRepo{scripts: make(map[string]*entity.GeneratedScript)}
	sessions := &fakeSessionRepo{sessions: make(map[string]*entity.UserSession)}
	query := script.NewQueryService(scripts, sessions)

	h := NewScriptHandler(nil, query)
	sh := NewSessionHandler(query)

	r := gin.New()
	r.GET("/v1/scripts", h.ListScripts)
	r.GET("/v1/scripts/:sid", h.GetScript)
	r.GET("/v1/sessions/:uid", sh.GetSession)
	return r, scripts, sessions
}

func TestGetScriptReturnsScript(t *testing.T) {
	r, scripts, _ := newTestRouter(t)
	scripts.scripts["s-1"] = &entity.GeneratedScript{
		ID:        "s-1",
		UserID:    "u-1",
		Topic:     "Black Holes",
		Content:   "ब्लैक होल क्या है?",
		WordCount: 4,
		CreatedAt: time.Now(),
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/scripts/s-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			ID    string `json:"id"`
			Topic string `json:"topic"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "s-1", resp.Data.ID)
	assert.Equal(t, "Black Holes", resp.Data.Topic)
}

func TestGetScriptNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/scripts/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error struct {
			ErrorCode string `json:"error_code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4001", resp.Error.ErrorCode)
}

func TestListScriptsRequiresUserID(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/scripts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListScriptsReturnsPagedResult(t *testing.T) {
	r, scripts, _ := newTestRouter(t)
	scripts.scripts["s-1"] = &entity.GeneratedScript{ID: "s-1", UserID: "u-1"}
	scripts.scripts["s-2"] = &entity.GeneratedScript{ID: "s-2", UserID: "u-2"}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/scripts?user_id=u-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "s-1", resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestGetSessionNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/u-404", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSessionReturnsCounters(t *testing.T) {
	r, _, sessions := newTestRouter(t)
	sessions.sessions["u-1"] = &entity.UserSession{
		UserID:       "u-1",
		Username:     "tester",
		ScriptCount:  7,
		LastActivity: time.Now(),
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/u-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			UserID      string `json:"user_id"`
			ScriptCount int64  `json:"script_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u-1", resp.Data.UserID)
	assert.Equal(t, int64(7), resp.Data.ScriptCount)
}
