package client_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/modelget/pkg/client"
)

func TestClientSetsUserAgent(t *testing.T) {
	mock := httpmock.NewMockTransport()
	var userAgent string
	mock.RegisterResponder(http.MethodGet, "https://example.com/model.onnx",
		func(req *http.Request) (*http.Response, error) {
			userAgent = req.Header.Get("User-Agent")
			return httpmock.NewStringResponse(http.StatusOK, "onnx"), nil
		})

	c := client.NewHTTPClient(client.Options{Transport: mock})
	resp, err := c.Get("https://example.com/model.onnx")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(userAgent, "modelget/"), userAgent)
}

func TestClientDoesNotRetry(t *testing.T) {
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, "https://example.com/model.onnx",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "busy"))

	c := client.NewHTTPClient(client.Options{Transport: mock})
	resp, err := c.Get("https://example.com/model.onnx")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestClientFollowsRedirects(t *testing.T) {
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodGet, "https://github.com/org/repo/raw/main/model.tflite",
		func(req *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(http.StatusFound, "")
			resp.Header.Set("Location", "https://cdn.example.com/model.tflite")
			return resp, nil
		})
	mock.RegisterResponder(http.MethodGet, "https://cdn.example.com/model.tflite",
		httpmock.NewStringResponder(http.StatusOK, "TFL3"))

	c := client.NewHTTPClient(client.Options{Transport: mock})
	resp, err := c.Get("https://github.com/org/repo/raw/main/model.tflite")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mock.GetCallCountInfo()["GET https://cdn.example.com/model.tflite"])
}
