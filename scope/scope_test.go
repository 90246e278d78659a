// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"net/http/httptest"
	"testing"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
	"github.com/prtg-sensors/flasharray/pkg/web"
	"github.com/prtg-sensors/flasharray/prtgapi"
	"github.com/prtg-sensors/flasharray/sensorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	doc, err := Capacity(client)
	require.NoError(t, err)
	assert.False(t, doc.IsError())

	channels := channelValues(doc)
	assert.Equal(t, float64(10<<40), channels["Capacity"])
	assert.Equal(t, float64(4<<40), channels["Used"])
	assert.InDelta(t, 40.0, channels["Used Percent"], 0.01)
	assert.Equal(t, 3.1, channels["Data Reduction"])
}

func TestCapacity_QueryFailure(t *testing.T) {
	srv, client := prepareArray(t)
	srv.Close()

	_, err := Capacity(client)
	assert.Error(t, err)
}

func TestPerformance(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	doc, err := Performance(client)
	require.NoError(t, err)

	channels := channelValues(doc)
	assert.Equal(t, float64(1200), channels["Read IOPS"])
	assert.Equal(t, float64(800), channels["Write IOPS"])
	assert.Equal(t, float64(100<<20), channels["Read Bandwidth"])
	assert.InDelta(t, 0.31, channels["Read Latency"], 0.001)
	assert.InDelta(t, 0.52, channels["Write Latency"], 0.001)
	assert.Equal(t, float64(3), channels["Queue Depth"])
}

func TestHardware(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	doc, err := Hardware(client)
	require.NoError(t, err)

	channels := channelValues(doc)
	assert.Equal(t, float64(flasharray.HardwareStatusOK.Code()), channels["CT0.FAN0"])
	assert.Equal(t, float64(flasharray.HardwareStatusCritical.Code()), channels["CT0.ETH0"])
}

func TestDrive(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	doc, err := Drive(client)
	require.NoError(t, err)

	channels := channelValues(doc)
	assert.Equal(t, float64(flasharray.DriveStatusHealthy.Code()), channels["CH0.BAY0"])
	assert.Equal(t, float64(flasharray.DriveStatusFailed.Code()), channels["CH0.BAY1"])
}

func TestVolume(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	doc, err := Volume(client, "vol-a")
	require.NoError(t, err)

	channels := channelValues(doc)
	assert.Equal(t, float64(1<<40), channels["Size"])
	assert.Equal(t, float64(1<<39), channels["Used"])
	assert.InDelta(t, 50.0, channels["Used Percent"], 0.01)
}

func TestVolume_Unknown(t *testing.T) {
	srv, client := prepareArray(t)
	defer srv.Close()

	_, err := Volume(client, "no-such-volume")
	assert.Error(t, err)
}

func TestVolumeMgmt(t *testing.T) {
	arraySrv, client := prepareArray(t)
	defer arraySrv.Close()

	prtgSrv, prtgMock, provisioner := preparePRTG(t)
	defer prtgSrv.Close()

	store, err := sensorstore.Open(t.TempDir(), "array1")
	require.NoError(t, err)

	doc, err := VolumeMgmt(client, provisioner, store)
	require.NoError(t, err)
	assert.False(t, doc.IsError())

	channels := channelValues(doc)
	assert.Equal(t, float64(1), channels["Scan Status"])

	// both volumes got a configured, running sensor
	assert.Len(t, store.Records(), 2)
	sensors := prtgMock.Sensors()
	for _, volume := range []string{"vol-a", "vol-b"} {
		id := store.Records()[volume]
		require.Contains(t, sensors, id)
		assert.Equal(t, prtgapi.SensorName(volume), sensors[id].Name)
		assert.False(t, sensors[id].Paused)
	}

	// a rerun with the same volumes changes nothing
	doc, err = VolumeMgmt(client, provisioner, store)
	require.NoError(t, err)
	assert.Equal(t, prtgMock.Sensors(), sensors)
	assert.Len(t, store.Records(), 2)
}

func TestVolumeMgmt_ListFailure(t *testing.T) {
	arraySrv, client := prepareArray(t)
	arraySrv.Close()

	prtgSrv, _, provisioner := preparePRTG(t)
	defer prtgSrv.Close()

	store, err := sensorstore.Open(t.TempDir(), "array1")
	require.NoError(t, err)

	_, err = VolumeMgmt(client, provisioner, store)
	assert.Error(t, err)
	assert.Empty(t, store.Records())
}

func prepareArray(t *testing.T) (*httptest.Server, *flasharray.Client) {
	t.Helper()

	mock := &flasharray.MockArrayServer{
		Username: "pureuser",
		Password: "purepassword",
		APIToken: "e2a92677-9db5-58e0-cc7f-3eb0fa07d5b6",
		Info:     flasharray.ArrayInfo{ID: "b7f98d30", ArrayName: "array1", Version: "5.3.0"},
		Space: flasharray.ArraySpace{
			Capacity:       10 << 40,
			Total:          4 << 40,
			Volumes:        3 << 40,
			Snapshots:      1 << 38,
			SharedSpace:    1 << 38,
			System:         1 << 37,
			DataReduction:  3.1,
			TotalReduction: 5.7,
		},
		Perf: flasharray.ArrayMonitor{
			ReadsPerSec:    1200,
			WritesPerSec:   800,
			OutputPerSec:   100 << 20,
			InputPerSec:    60 << 20,
			UsecPerReadOp:  310,
			UsecPerWriteOp: 520,
			QueueDepth:     3,
		},
		Hardware: []flasharray.Hardware{
			{Name: "CT0.FAN0", Status: "ok"},
			{Name: "CT0.ETH0", Status: "critical"},
		},
		Drives: []flasharray.Drive{
			{Name: "CH0.BAY0", Status: "healthy", Capacity: 1 << 40},
			{Name: "CH0.BAY1", Status: "failed", Capacity: 1 << 40},
		},
		Volumes: []flasharray.Volume{
			{Name: "vol-a", Size: 1 << 40},
			{Name: "vol-b", Size: 2 << 40},
		},
		VolSpace: []flasharray.VolumeSpace{
			{Name: "vol-a", Size: 1 << 40, Total: 1 << 39, Snapshots: 1 << 30, DataReduction: 2.5},
		},
	}
	srv := httptest.NewServer(mock)

	client, err := flasharray.New(web.ClientConfig{}, web.RequestConfig{
		URL:      srv.URL,
		Username: "pureuser",
		Password: "purepassword",
	}, "")
	require.NoError(t, err)

	return srv, client
}

func preparePRTG(t *testing.T) (*httptest.Server, *prtgapi.MockPRTGServer, *prtgapi.Provisioner) {
	t.Helper()

	mock := &prtgapi.MockPRTGServer{Username: "prtgadmin", PassHash: "1234567890"}
	srv := httptest.NewServer(mock)
	templateID := mock.AddSensor(prtgapi.MockSensor{Name: "Template"})

	client, err := prtgapi.New(web.ClientConfig{}, web.RequestConfig{
		URL:      srv.URL,
		Username: "prtgadmin",
	}, "1234567890")
	require.NoError(t, err)

	return srv, mock, prtgapi.NewProvisioner(client, templateID, "2001")
}

func channelValues(doc *prtg.Document) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range doc.Results() {
		out[r.Channel] = r.Value
	}
	return out
}
