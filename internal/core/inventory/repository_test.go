package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerostock/aerostock/config"
	"github.com/aerostock/aerostock/internal/storage/upstream"
)

func newTestRepository(t *testing.T, handler http.Handler) *Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	client, err := upstream.NewClient(&config.SourceConfig{
		Scheme:  u.Scheme,
		Host:    u.Hostname(),
		Port:    u.Port(),
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return NewRepository(client)
}

func TestRepository_ListCollections(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/airplane", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"ID": 3, "name": "Citation", "cost": 10000000, "type": "Airplane"}]`))
	})
	mux.HandleFunc("/component", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	repo := newTestRepository(t, mux)

	airplanes, err := repo.ListAirplanes(context.Background())
	require.NoError(t, err)
	require.Len(t, airplanes, 1)
	assert.Equal(t, Key{TypeAirplane, 3}, airplanes[0].Key())

	components, err := repo.ListComponents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, components)
	assert.Empty(t, components)
}

func TestRepository_ListFacilities(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facility", r.URL.Path)
		_, _ = w.Write([]byte(`[{"ID": 4, "name": "Wichita Plant", "city": "Wichita", "state": "KS",
			"employee_count": 310, "manager_id": 7, "models_completed": 12, "components_in_production": 40}]`))
	}))

	facilities, err := repo.ListFacilities(context.Background())
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, Facility{
		ID: 4, Name: "Wichita Plant", City: "Wichita", State: "KS",
		EmployeeCount: 310, ManagerID: 7, ModelsCompleted: 12, ComponentsInProduction: 40,
	}, facilities[0])
}

func TestRepository_Create(t *testing.T) {
	var got map[string]interface{}
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/component", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))

	err := repo.Create(context.Background(), "/component", map[string]interface{}{"name": "Winglet", "type": "Component"})
	require.NoError(t, err)
	assert.Equal(t, "Winglet", got["name"])
}

func TestRepository_CreateRejected(t *testing.T) {
	repo := newTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "facility does not exist", http.StatusBadRequest)
	}))

	err := repo.Create(context.Background(), "/airplane", map[string]interface{}{})

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Contains(t, statusErr.Body, "facility does not exist")
}
