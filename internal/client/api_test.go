package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uninorte/lead-system/internal/core/domain"
)

func TestAPI_AttachesBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL+"/", srv.Client()).WithToken("abc")
	leads, err := api.Leads(context.Background(), domain.LeadFilter{Course: "Direito", SellerID: "s1"})
	require.NoError(t, err)

	assert.Empty(t, leads)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "curso=Direito&vendedor_id=s1", gotQuery)
}

func TestAPI_NoTokenNoHeader(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewAPI(srv.URL, srv.Client()).Courses(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestAPI_ErrorMapping(t *testing.T) {
	tests := []struct {
		status  int
		message string
		target  error
	}{
		{http.StatusUnauthorized, "invalid token", ErrUnauthorized},
		{http.StatusForbidden, "access forbidden", ErrForbidden},
		{http.StatusForbidden, domain.ErrUserInactive.Error(), ErrAccountDisabled},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error":"` + tt.message + `"}`))
		}))

		_, err := NewAPI(srv.URL, srv.Client()).WithToken("t").Users(context.Background())
		srv.Close()

		require.ErrorIs(t, err, tt.target)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, tt.message, apiErr.Message)
	}
}

func TestAPI_ServerErrorIsNotACredentialProblem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewAPI(srv.URL, srv.Client()).Dashboard(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrForbidden)
}
