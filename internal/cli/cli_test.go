package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aerostock/aerostock/config"
	"github.com/aerostock/aerostock/internal/core/inventory"
)

func newSourceServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/airplane", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ID": 1, "name": "Skyhawk", "cost": 425000, "production_stage": "Finished", "city": "Wichita", "state": "KS"},
			{"ID": 2, "name": "Citation", "cost": 12000000, "production_stage": "In-Progress", "city": "Wichita", "state": "KS"}
		]`))
	})
	mux.HandleFunc("/component", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ID": 1, "name": "Sky Rudder", "cost": "TBD", "production_stage": "Unstarted", "city": "Tulsa", "state": "OK"}
		]`))
	})
	mux.HandleFunc("/facility", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"ID": 1, "name": "Wichita Plant", "city": "Wichita", "state": "KS", "type": "Assembly", "employee_count": 1250},
			{"ID": 2, "name": "Tulsa Works", "city": "Tulsa", "state": "OK", "description": "Control surfaces"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommand_Table(t *testing.T) {
	srv := newSourceServer(t)

	out, err := run(t, "query", "--source", srv.URL, "--search", "sky", "--sort", "name")
	require.NoError(t, err)

	assert.Contains(t, out, "Product")
	assert.Contains(t, out, "Skyhawk")
	assert.Contains(t, out, "Wichita, KS")
	assert.Contains(t, out, "$425,000.00")
	assert.Contains(t, out, "TBD")
	assert.NotContains(t, out, "Citation")
	assert.Contains(t, out, "page 1 of 1 (2 records)")
}

func TestQueryCommand_FilterAndPaging(t *testing.T) {
	srv := newSourceServer(t)

	out, err := run(t, "query", "--source", srv.URL, "--filter", "airplane", "--sort", "cost", "--dir", "desc", "--page-size", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Citation")
	assert.NotContains(t, out, "Skyhawk")
	assert.Contains(t, out, "page 1 of 2 (2 records)")
}

func TestQueryCommand_InvalidInput(t *testing.T) {
	_, err := run(t, "query", "--filter", "cheap")
	assert.ErrorIs(t, err, inventory.ErrUnknownFilter)

	_, err = run(t, "query", "--sort", "facility")
	assert.ErrorIs(t, err, inventory.ErrUnknownSortKey)

	_, err = run(t, "query", "--sort", "cost", "--dir", "up")
	assert.ErrorContains(t, err, "--dir")

	_, err = run(t, "query", "--source", "localhost")
	assert.ErrorContains(t, err, "scheme and host required")
}

func TestQueryCommand_SourceDown(t *testing.T) {
	srv := newSourceServer(t)
	url := srv.URL
	srv.Close()

	_, err := run(t, "query", "--source", url)
	assert.ErrorIs(t, err, inventory.ErrSourceUnavailable)
}

func TestFacilitiesCommand_List(t *testing.T) {
	srv := newSourceServer(t)

	out, err := run(t, "facilities", "--source", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Wichita Plant")
	assert.Contains(t, out, "Wichita, KS")
	assert.Contains(t, out, "1,250")
	assert.Contains(t, out, "Tulsa Works")
	assert.Contains(t, out, "2 facilities")
}

func TestFacilitiesCommand_One(t *testing.T) {
	srv := newSourceServer(t)

	out, err := run(t, "facilities", "2", "--source", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Tulsa Works (Tulsa, OK)")
	assert.Contains(t, out, "Control surfaces")
	assert.Contains(t, out, "Sky Rudder")
	assert.NotContains(t, out, "Skyhawk")
	assert.Contains(t, out, "0 airplanes, 1 components")
}

func TestFacilitiesCommand_Errors(t *testing.T) {
	srv := newSourceServer(t)

	_, err := run(t, "facilities", "9", "--source", srv.URL)
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	_, err = run(t, "facilities", "two", "--source", srv.URL)
	assert.ErrorContains(t, err, "invalid facility id")
}

func TestQueryCommand_SourceWithBasePath(t *testing.T) {
	srv := newSourceServer(t)
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", srv.Config.Handler))
	prefixed := httptest.NewServer(mux)
	t.Cleanup(prefixed.Close)

	out, err := run(t, "query", "--source", prefixed.URL+"/api/v1/")
	require.NoError(t, err)
	assert.Contains(t, out, "page 1 of 1 (3 records)")
}

func TestFiltersCommand(t *testing.T) {
	out, err := run(t, "filters")
	require.NoError(t, err)

	assert.Contains(t, out, "Production Stage")
	assert.Contains(t, out, inventory.FilterCost1mTo10m)
	assert.Contains(t, out, "> $10m")
}

func TestFormatCost(t *testing.T) {
	p := message.NewPrinter(language.English)

	assert.Equal(t, "$1,234,567.50", formatCost(p, inventory.NewCost(1234567.5)))
	assert.Equal(t, "$0.00", formatCost(p, inventory.NewCost(0)))
	assert.Equal(t, "40000", formatCost(p, inventory.RawCost("40000")))
	assert.Equal(t, "-", formatCost(p, inventory.Cost{}))
}

func TestApplySourceURL(t *testing.T) {
	var src config.SourceConfig
	require.NoError(t, applySourceURL(&src, "https://inventory.example.com:8443"))

	assert.Equal(t, "https", src.Scheme)
	assert.Equal(t, "inventory.example.com", src.Host)
	assert.Equal(t, "8443", src.Port)
	assert.Empty(t, src.BasePath)

	require.NoError(t, applySourceURL(&src, "http://gateway.local/inventory/api/"))
	assert.Equal(t, "gateway.local", src.Host)
	assert.Empty(t, src.Port)
	assert.Equal(t, "/inventory/api", src.BasePath)
	assert.Equal(t, "http://gateway.local/inventory/api", src.BaseURL())
}
