package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type TestServer struct {
	*httptest.Server
	t *testing.T
}

func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	server := httptest.NewServer(handler)
	return &TestServer{
		Server: server,
		t:      t,
	}
}

// do sends a request with an optional bearer token and JSON body
func (ts *TestServer) do(method, path, token string, body interface{}) *http.Response {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(ts.t, err)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, bodyReader)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	return resp
}

func (ts *TestServer) GET(path, token string) *http.Response {
	return ts.do(http.MethodGet, path, token, nil)
}

func (ts *TestServer) POST(path, token string, body interface{}) *http.Response {
	return ts.do(http.MethodPost, path, token, body)
}

func (ts *TestServer) PUT(path, token string, body interface{}) *http.Response {
	return ts.do(http.MethodPut, path, token, body)
}

func (ts *TestServer) DELETE(path, token string) *http.Response {
	return ts.do(http.MethodDelete, path, token, nil)
}

func AssertJSONResponse(t *testing.T, resp *http.Response, expectedStatus int, target interface{}) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	if target != nil {
		defer resp.Body.Close()
		err := json.NewDecoder(resp.Body).Decode(target)
		require.NoError(t, err)
	}
}

func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	require.Equal(t, expectedStatus, resp.StatusCode)

	defer resp.Body.Close()
	var errorResp map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&errorResp)
	require.NoError(t, err)

	if expectedMessage != "" {
		require.Contains(t, errorResp["error"], expectedMessage)
	}
}
