// SPDX-License-Identifier: GPL-3.0-or-later

package flasharray

import (
	"net/http/httptest"
	"testing"

	"github.com/prtg-sensors/flasharray/pkg/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "pureuser"
	testPassword = "purepassword"
	testAPIToken = "e2a92677-9db5-58e0-cc7f-3eb0fa07d5b6"
)

var (
	testInfo = ArrayInfo{ID: "b7f98d30", ArrayName: "array1", Version: "5.3.0"}
	testVols = []Volume{{Name: "vol-a", Size: 1 << 40}, {Name: "vol-b", Size: 2 << 40}}
)

func TestNew(t *testing.T) {
	_, err := New(web.ClientConfig{}, web.RequestConfig{}, "")
	assert.NoError(t, err)
}

func TestClient_Login(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()

	assert.NoError(t, client.Login())
	assert.True(t, client.LoggedIn())
	assert.Equal(t, testAPIToken, client.token.get())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()
	client.Request.Password = "wrong"

	err := client.Login()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestClient_Login_NoCredentials(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()
	client.Request.Username = ""
	client.Request.Password = ""

	assert.ErrorIs(t, client.Login(), ErrAuthFailed)
}

func TestClient_Login_WithAPIToken(t *testing.T) {
	srv, mock, _ := prepareSrvClient(t)
	defer srv.Close()

	client, err := New(web.ClientConfig{}, web.RequestConfig{URL: srv.URL}, mock.APIToken)
	require.NoError(t, err)

	assert.NoError(t, client.Login())
	assert.True(t, client.LoggedIn())
}

func TestClient_Logout(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()

	require.NoError(t, client.Login())

	assert.NoError(t, client.Logout())
	assert.False(t, client.LoggedIn())
}

func TestClient_ArrayInfo(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()

	info, err := client.ArrayInfo()
	require.NoError(t, err)
	assert.Equal(t, testInfo, *info)
}

func TestClient_ArraySpace(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	space, err := client.ArraySpace()
	require.NoError(t, err)
	assert.Equal(t, mock.Space, *space)
}

func TestClient_Monitor(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	perf, err := client.Monitor()
	require.NoError(t, err)
	assert.Equal(t, mock.Perf, *perf)
}

func TestClient_Hardware(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	hws, err := client.Hardware()
	require.NoError(t, err)
	assert.Equal(t, mock.Hardware, hws)
}

func TestClient_Drives(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	drives, err := client.Drives()
	require.NoError(t, err)
	assert.Equal(t, mock.Drives, drives)
}

func TestClient_VolumeNames(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	defer srv.Close()

	names, err := client.VolumeNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"vol-a", "vol-b"}, names)
}

func TestClient_VolumeSpace(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	space, err := client.VolumeSpace("vol-a")
	require.NoError(t, err)
	assert.Equal(t, mock.VolSpace[0], *space)

	_, err = client.VolumeSpace("no-such-volume")
	assert.Error(t, err)
}

func TestClient_RetryOnExpiredSession(t *testing.T) {
	srv, mock, client := prepareSrvClient(t)
	defer srv.Close()

	require.NoError(t, client.Login())
	mock.ResetSessions()

	vols, err := client.Volumes()
	require.NoError(t, err)
	assert.Equal(t, testVols, vols)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv, _, client := prepareSrvClient(t)
	srv.Close()

	_, err := client.Volumes()
	assert.Error(t, err)
}

func prepareSrvClient(t *testing.T) (*httptest.Server, *MockArrayServer, *Client) {
	t.Helper()

	mock := &MockArrayServer{
		Username: testUser,
		Password: testPassword,
		APIToken: testAPIToken,
		Info:     testInfo,
		Space: ArraySpace{
			Capacity:         10 << 40,
			Total:            4 << 40,
			Volumes:          3 << 40,
			Snapshots:        1 << 38,
			SharedSpace:      1 << 38,
			System:           1 << 37,
			DataReduction:    3.1,
			TotalReduction:   5.7,
			ThinProvisioning: 0.83,
		},
		Perf: ArrayMonitor{
			ReadsPerSec:    1200,
			WritesPerSec:   800,
			OutputPerSec:   100 << 20,
			InputPerSec:    60 << 20,
			UsecPerReadOp:  310,
			UsecPerWriteOp: 520,
			QueueDepth:     3,
		},
		Hardware: []Hardware{
			{Name: "CT0.FAN0", Status: "ok"},
			{Name: "CT0.ETH0", Status: "critical"},
		},
		Drives: []Drive{
			{Name: "CH0.BAY0", Status: "healthy", Capacity: 1 << 40},
			{Name: "CH0.BAY1", Status: "unused", Capacity: 1 << 40},
		},
		Volumes: testVols,
		VolSpace: []VolumeSpace{
			{Name: "vol-a", Size: 1 << 40, Total: 1 << 39, Snapshots: 1 << 30, DataReduction: 2.5},
		},
	}
	srv := httptest.NewServer(mock)

	client, err := New(web.ClientConfig{}, web.RequestConfig{
		URL:      srv.URL,
		Username: testUser,
		Password: testPassword,
	}, "")
	require.NoError(t, err)

	return srv, mock, client
}
