// SPDX-License-Identifier: GPL-3.0-or-later

package flasharray

// ArrayInfo represents 'GET array' response.
type ArrayInfo struct {
	ID        string `json:"id"`
	ArrayName string `json:"array_name"`
	Version   string `json:"version"`
}

// ArraySpace represents 'GET array?space=true' response.
type ArraySpace struct {
	Capacity         int64   `json:"capacity"`
	Total            int64   `json:"total"`
	Volumes          int64   `json:"volumes"`
	Snapshots        int64   `json:"snapshots"`
	SharedSpace      int64   `json:"shared_space"`
	System           int64   `json:"system"`
	DataReduction    float64 `json:"data_reduction"`
	TotalReduction   float64 `json:"total_reduction"`
	ThinProvisioning float64 `json:"thin_provisioning"`
}

// ArrayMonitor represents one entry of 'GET array?action=monitor' response.
type ArrayMonitor struct {
	ReadsPerSec    int64 `json:"reads_per_sec"`
	WritesPerSec   int64 `json:"writes_per_sec"`
	OutputPerSec   int64 `json:"output_per_sec"`
	InputPerSec    int64 `json:"input_per_sec"`
	UsecPerReadOp  int64 `json:"usec_per_read_op"`
	UsecPerWriteOp int64 `json:"usec_per_write_op"`
	QueueDepth     int64 `json:"queue_depth"`
}

// Hardware represents one entry of 'GET hardware' response.
type Hardware struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Drive represents one entry of 'GET drive' response.
type Drive struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Capacity int64  `json:"capacity"`
}

// Volume represents one entry of 'GET volume' response.
type Volume struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// VolumeSpace represents 'GET volume/<name>?space=true' response.
type VolumeSpace struct {
	Name          string  `json:"name"`
	Size          int64   `json:"size"`
	Total         int64   `json:"total"`
	Snapshots     int64   `json:"snapshots"`
	DataReduction float64 `json:"data_reduction"`
}
