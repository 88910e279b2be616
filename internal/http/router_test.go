package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"schooldb/internal/config"
	"schooldb/internal/schoolsapi"
	"schooldb/internal/services/filters"
	"schooldb/internal/services/listing"
	"schooldb/internal/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry imitates the upstream school registry
func fakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schools":
			if r.URL.Query().Get("region_id") == "999" {
				w.Write([]byte(`{"status":false,"message":"bad region"}`))
				return
			}
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			count, _ := strconv.Atoi(r.URL.Query().Get("count"))
			list := make([]map[string]any, 0, count)
			for i := 0; i < count; i++ {
				list = append(list, map[string]any{
					"uuid":    fmt.Sprintf("p%d-%d", page, i),
					"edu_org": map[string]any{"full_name": fmt.Sprintf("Школа %d", i)},
				})
			}
			json.NewEncoder(w).Encode(map[string]any{
				"status": true,
				"data":   map[string]any{"list": list, "pages_count": 250},
			})
		case "/regions":
			w.Write([]byte(`{"status":true,"data":[{"id":77,"name":"Москва"}]}`))
		case "/federalDistricts":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) (http.Handler, *session.Registry) {
	t.Helper()
	return newRouterFor(t, fakeRegistry(t))
}

func newRouterFor(t *testing.T, upstream *httptest.Server) (http.Handler, *session.Registry) {
	t.Helper()
	client := schoolsapi.New(schoolsapi.NewHTTPClient(upstream.URL, "schooldb-test", 5))
	reg := session.NewRegistry(client, 10)

	cfg := config.Cfg{
		App: config.AppCfg{Env: "test", Port: "0"},
		API: config.APICfg{BaseURL: upstream.URL},
	}
	return NewRouter(RouterDependencies{
		Config:   cfg,
		Sessions: reg,
		Filters:  filters.NewService(client),
	}), reg
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		SessionID string        `json:"session_id"`
		State     listing.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, resp.State.CurrentPage)
	return resp.SessionID
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) listing.State {
	t.Helper()
	var st listing.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSessionLoadFlow(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/load", map[string]any{"page": 1, "count": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Len(t, st.Rows, 10)
	assert.Equal(t, 100, st.TotalPages)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/load", map[string]any{"page": 150, "count": 10, "append": true})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeState(t, rec)
	assert.Len(t, st.Rows, 20)
	assert.Equal(t, 100, st.CurrentPage)
	assert.Equal(t, "p100-0", st.Rows[10].UUID)

	rec = do(t, h, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeState(t, rec).Rows, 20)
}

func TestSessionLoadFailureAndClear(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/load", map[string]any{"page": 1, "region_id": 999})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	assert.Equal(t, fmt.Sprintf(listing.LoadErrorFormat, 1), st.Error)
	assert.Empty(t, st.Rows)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/clear-error", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeState(t, rec).Error)
}

func TestLoadValidation(t *testing.T) {
	h, _ := newTestRouter(t)
	id := createSession(t, h)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/load", map[string]any{"page": 1, "count": 500})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "count")

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/load", map[string]any{"page": 1, "status": "closed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status")
}

func TestUnknownAndDiscardedSessions(t *testing.T) {
	h, reg := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := createSession(t, h)
	assert.Equal(t, 1, reg.Count())

	rec = do(t, h, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, reg.Count())

	rec = do(t, h, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFilterEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":77,"name":"Москва"}]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/federal-districts", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = do(t, h, http.MethodGet, "/filters", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFilterEndpointsRejectedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/regions":
			w.Write([]byte(`{"status":false,"message":"regions disabled"}`))
		case "/federalDistricts":
			w.Write([]byte(`{"status":true,"data":[{"id":3,"name":"Южный"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)
	h, _ := newRouterFor(t, upstream)

	rec := do(t, h, http.MethodGet, "/regions", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "regions disabled")

	rec = do(t, h, http.MethodGet, "/filters", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "regions disabled")

	rec = do(t, h, http.MethodGet, "/federal-districts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":3,"name":"Южный"}]}`, rec.Body.String())
}
