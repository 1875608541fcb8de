package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

func setupTestAPI(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		requests = append(requests, rec)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), &requests
}

func ptr(v float64) *float64 { return &v }

func TestRun_Commands(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		expectedReq recordedRequest
	}{
		{
			name:        "state",
			opts:        Options{Cmd: "state"},
			expectedReq: recordedRequest{Method: http.MethodGet, Path: "/api/state"},
		},
		{
			name:        "stats",
			opts:        Options{Cmd: "stats"},
			expectedReq: recordedRequest{Method: http.MethodGet, Path: "/api/history/stats"},
		},
		{
			name: "set reading",
			opts: Options{Cmd: "set-reading", Temperature: ptr(0), Humidity: ptr(45.5)},
			expectedReq: recordedRequest{Method: http.MethodPut, Path: "/api/state/reading",
				Body: map[string]interface{}{"temperature": 0.0, "humidity": 45.5}},
		},
		{
			name: "set lights",
			opts: Options{Cmd: "set-lights", Red: true, Yellow: true},
			expectedReq: recordedRequest{Method: http.MethodPut, Path: "/api/state/lights",
				Body: map[string]interface{}{"red": true, "green": false, "yellow": true}},
		},
		{
			name:        "clear history",
			opts:        Options{Cmd: "clear-history"},
			expectedReq: recordedRequest{Method: http.MethodDelete, Path: "/api/history"},
		},
		{
			name: "pause",
			opts: Options{Cmd: "pause"},
			expectedReq: recordedRequest{Method: http.MethodPut, Path: "/api/simulator",
				Body: map[string]interface{}{"running": false}},
		},
		{
			name: "resume",
			opts: Options{Cmd: "resume"},
			expectedReq: recordedRequest{Method: http.MethodPut, Path: "/api/simulator",
				Body: map[string]interface{}{"running": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := setupTestAPI(t, http.StatusOK, `{"ok":true}`)

			out, err := run(client, tt.opts)

			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, out)
			require.Len(t, *requests, 1)
			assert.Equal(t, tt.expectedReq, (*requests)[0])
		})
	}
}

func TestRun_SetReadingRequiresBothValues(t *testing.T) {
	client, requests := setupTestAPI(t, http.StatusOK, `{}`)

	_, err := run(client, Options{Cmd: "set-reading", Temperature: ptr(23)})

	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestRun_InvalidCommand(t *testing.T) {
	client, requests := setupTestAPI(t, http.StatusOK, `{}`)

	_, err := run(client, Options{Cmd: "set-zone-mode"})

	assert.Error(t, err)
	assert.Empty(t, *requests)
}

func TestClient_APIError(t *testing.T) {
	client, _ := setupTestAPI(t, http.StatusBadRequest, `{"error":"Invalid JSON payload"}`)

	_, err := client.Get("/api/state")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400 Invalid JSON payload")
}

func TestClient_NoContent(t *testing.T) {
	client, _ := setupTestAPI(t, http.StatusNoContent, "")

	out, err := client.Delete("/api/history")

	require.NoError(t, err)
	assert.Empty(t, out)
}
