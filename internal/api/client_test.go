package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func TestDo_SendsJSONAndHeaders(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotCT, gotReqID string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get(RequestIDHeader)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"status":"Paid"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithToken(" secret "))
	var out widget
	err := c.Put(context.Background(), ItemPath("billing", 5), map[string]string{"status": "Paid"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/billing/5", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	_, perr := uuid.Parse(gotReqID)
	assert.NoError(t, perr)
	assert.Equal(t, "Paid", gotBody["status"])
	assert.Equal(t, widget{ID: 5, Status: "Paid"}, out)
}

func TestDo_ErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"locked"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Delete(context.Background(), ItemPath("partners", 9), nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "locked", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "locked", msg)
}

func TestDo_ErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Get(context.Background(), "/api/billing", nil)
	require.Error(t, err)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "502")
}

func TestDo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Get(context.Background(), "/api/billing", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_EmptyAndMalformedBodies(t *testing.T) {
	body := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()
	c := NewClient(srv.URL)

	var out widget
	assert.ErrorIs(t, c.Get(context.Background(), "/api/x", &out), ErrEmptyBody)

	body = "{not json"
	err := c.Get(context.Background(), "/api/x", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")

	// Nothing to decode into: an empty 2xx is fine.
	body = ""
	assert.NoError(t, c.Delete(context.Background(), "/api/x/1", nil))
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, WithTimeout(time.Second)).Get(context.Background(), "/api/x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/api/company-settings", CollectionPath("company-settings"))
	assert.Equal(t, "/api/billing/12", ItemPath("/billing/", 12))
}
