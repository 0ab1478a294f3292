package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salon-suite/internal/domain"
	"salon-suite/internal/feature/client"
)

type fakeClientService struct {
	dups    []domain.DuplicateMatch
	created *domain.Client
	views   []domain.Client
	err     error
}

func (f *fakeClientService) FindDuplicates(_ context.Context, _, _ string) ([]domain.DuplicateMatch, error) {
	return f.dups, f.err
}

func (f *fakeClientService) CreateClient(_ context.Context, _ client.CreateInput) (*domain.Client, error) {
	return f.created, f.err
}

func (f *fakeClientService) ListClients(_ context.Context, _ string) ([]domain.Client, error) {
	return f.views, f.err
}

func newClientTestRouter(svc ClientService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	NewClientModule(svc, zap.NewNop()).MountAPI(api)
	return r
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestDuplicateCheckEndpoint(t *testing.T) {
	t.Run("无命中", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients/duplicate-check", `{"name":"Ana","phone":""}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)

		var data struct {
			HasDuplicates bool                    `json:"hasDuplicates"`
			Duplicates    []domain.DuplicateMatch `json:"duplicates"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.False(t, data.HasDuplicates)
		assert.NotNil(t, data.Duplicates)
		assert.Empty(t, data.Duplicates)
	})

	t.Run("有命中", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{dups: []domain.DuplicateMatch{
			{MatchType: "phone", Client: domain.Client{ID: "c1", Name: "Maria Garcia"}},
		}})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients/duplicate-check", `{"phone":"30712345"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var data struct {
			HasDuplicates bool                    `json:"hasDuplicates"`
			Duplicates    []domain.DuplicateMatch `json:"duplicates"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data.HasDuplicates)
		require.Len(t, data.Duplicates, 1)
		assert.Equal(t, "phone", data.Duplicates[0].MatchType)
	})

	t.Run("参数错误给 400", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{err: &client.ValidationError{Msg: "name or phone is required"}})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients/duplicate-check", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 400, env.Code)
		assert.Equal(t, "name or phone is required", env.Msg)
	})
}

func TestCreateClientEndpoint(t *testing.T) {
	t.Run("成功返回画像", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{created: &domain.Client{
			ID: "c9", Name: "Ana Lopez", Avatar: "AL", Segment: "New",
		}})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients", `{"name":"Ana Lopez","phone":"777 8888"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.Client
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "c9", got.ID)
		assert.Equal(t, "AL", got.Avatar)
		assert.Equal(t, "New", got.Segment)
	})

	t.Run("判重冲突给 409 与命中明细", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{err: &client.DuplicateError{
			Kind:     "phone",
			Existing: domain.Client{ID: "c1", Name: "Maria Garcia"},
		}})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients", `{"name":"X","phone":"30712345"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 409, env.Code)

		var data struct {
			DuplicateType  string        `json:"duplicateType"`
			ExistingClient domain.Client `json:"existingClient"`
			Message        string        `json:"message"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "phone", data.DuplicateType)
		assert.Equal(t, "c1", data.ExistingClient.ID)
		assert.Contains(t, data.Message, "phone number")
	})

	t.Run("持久层故障只给不透明 500", func(t *testing.T) {
		r := newClientTestRouter(&fakeClientService{err: errors.New("duplicate key value violates unique constraint")})
		w, env := doJSON(t, r, http.MethodPost, "/api/v1/clients", `{"name":"X","phone":"1"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal error", env.Msg)
		assert.NotContains(t, w.Body.String(), "unique constraint")
	})
}

func TestListClientsEndpoint(t *testing.T) {
	r := newClientTestRouter(&fakeClientService{views: []domain.Client{
		{ID: "c1", Name: "Maria Garcia", Avatar: "MG", Segment: "VIP", TotalSpent: 420.5},
	}})
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/clients?locationId=loc-1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Clients []domain.Client `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Clients, 1)
	assert.Equal(t, "MG", data.Clients[0].Avatar)
	assert.Equal(t, 420.5, data.Clients[0].TotalSpent)
}
