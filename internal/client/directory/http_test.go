package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AuthenticateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "admin", creds["username"])

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{})
	token, err := client.Authenticate(context.Background(), "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
}

func TestClient_AuthenticateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid username or password"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{})
	_, err := client.Authenticate(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_ProtectedCallWithoutTokenNeverHitsServer(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{})
	_, err := client.List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, hits)
}

func TestClient_ListSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer held-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Employee{{ID: "1", Name: "Alice"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	employees, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Alice", employees[0].Name)
}

func TestClient_DeleteNoContentIsNotParsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		// 204 with no body; the client must not try to decode it.
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	assert.NoError(t, client.Delete(context.Background(), "some-id"))
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Employee not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	err := client.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ErrorBodyFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	_, err := client.List(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "API Error: 500 Internal Server Error", transportErr.Message)
}

func TestClient_ServerMessagePreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "store is down for maintenance"})
	}))
	defer server.Close()

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	_, err := client.List(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "store is down for maintenance", transportErr.Message)
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, &tokenHolder{token: "held-token"})
	_, err := client.List(context.Background())

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}
