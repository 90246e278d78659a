// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestConfig_Copy(t *testing.T) {
	tests := map[string]struct {
		orig   RequestConfig
		change func(req *RequestConfig)
		verify func(t *testing.T, orig, reqCopy RequestConfig)
	}{
		"change headers": {
			orig: RequestConfig{
				URL:    "http://127.0.0.1/api/1.12/array",
				Method: "POST",
				Headers: map[string]string{
					"X-Api-Key": "secret",
				},
				Username: "username",
				Password: "password",
			},
			change: func(req *RequestConfig) {
				req.Headers["header_key"] = "header_value"
			},
			verify: func(t *testing.T, orig, reqCopy RequestConfig) {
				assert.Equal(t, 1, len(orig.Headers))
				assert.Equal(t, 2, len(reqCopy.Headers))
			},
		},
		"nil headers": {
			orig: RequestConfig{
				URL: "http://127.0.0.1/api/1.12/array",
			},
			change: func(req *RequestConfig) {
				req.Headers = map[string]string{"new": "header"}
			},
			verify: func(t *testing.T, orig, reqCopy RequestConfig) {
				assert.Nil(t, orig.Headers)
				assert.NotNil(t, reqCopy.Headers)
			},
		},
		"change URL": {
			orig: RequestConfig{
				URL: "http://example.com",
			},
			change: func(req *RequestConfig) {
				req.URL = "http://changed.com"
			},
			verify: func(t *testing.T, orig, reqCopy RequestConfig) {
				assert.Equal(t, "http://example.com", orig.URL)
				assert.Equal(t, "http://changed.com", reqCopy.URL)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			reqCopy := test.orig.Copy()

			assert.Equal(t, test.orig, reqCopy)

			test.change(&reqCopy)

			test.verify(t, test.orig, reqCopy)
		})
	}
}

func TestNewHTTPRequest(t *testing.T) {
	req, err := NewHTTPRequest(RequestConfig{
		URL:      "http://127.0.0.1/api/1.12/array",
		Username: "username",
		Password: "password",
		Headers:  map[string]string{"X-Custom": "value", "Host": "array1"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "username", user)
	assert.Equal(t, "password", pass)

	assert.Equal(t, "value", req.Header.Get("X-Custom"))
	assert.Equal(t, "array1", req.Host)
	assert.Contains(t, req.Header.Get("User-Agent"), "flasharray-sensor/")
}

func TestNewHTTPRequestWithPath(t *testing.T) {
	req, err := NewHTTPRequestWithPath(RequestConfig{URL: "http://127.0.0.1"}, "/api/1.12/volume")

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1/api/1.12/volume", req.URL.String())
}

func TestURLQuery(t *testing.T) {
	assert.Equal(t, "action=monitor", URLQuery("action", "monitor"))
}

func TestURLQueryMulti(t *testing.T) {
	assert.Equal(t, "", URLQueryMulti(nil))
	assert.Equal(t, "a=1&b=2", URLQueryMulti(map[string]string{"a": "1", "b": "2"}))
}
