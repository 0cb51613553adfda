package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFromQuery(t *testing.T) {
	t.Parallel()
	tests := map[string]page{
		"":                      {Limit: 50, Offset: 0},
		"?limit=10&offset=20":   {Limit: 10, Offset: 20},
		"?limit=0":              {Limit: 1, Offset: 0},
		"?limit=5000":           {Limit: 200, Offset: 0},
		"?limit=abc&offset=-4":  {Limit: 50, Offset: 0},
		"?limit=%2012&offset=3": {Limit: 12, Offset: 3},
	}
	for query, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/scores"+query, nil)
		assert.Equal(t, want, pageFromQuery(r, 50, 200), "query %q", query)
	}
}

func TestPathID(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	var (
		got    int64
		gotErr error
	)
	mux.HandleFunc("GET /modules/{id}", func(_ http.ResponseWriter, r *http.Request) {
		got, gotErr = pathID(r, "id")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/modules/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	for _, bad := range []string{"0", "-3", "x"} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/modules/"+bad, nil))
		require.Error(t, gotErr, bad)
	}
}
