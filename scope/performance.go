// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
)

// Performance reports array IOPS, bandwidth, latency and queue depth.
func Performance(client *flasharray.Client) (*prtg.Document, error) {
	perf, err := client.Monitor()
	if err != nil {
		return nil, fmt.Errorf("query array performance: %w", err)
	}

	doc := prtg.New()
	doc.Add(prtg.Result{Channel: "Read IOPS", Value: float64(perf.ReadsPerSec), Unit: prtg.UnitCustom, CustomUnit: "IOPS"})
	doc.Add(prtg.Result{Channel: "Write IOPS", Value: float64(perf.WritesPerSec), Unit: prtg.UnitCustom, CustomUnit: "IOPS"})
	doc.Add(prtg.Result{Channel: "Read Bandwidth", Value: float64(perf.OutputPerSec), Unit: prtg.UnitSpeedDisk})
	doc.Add(prtg.Result{Channel: "Write Bandwidth", Value: float64(perf.InputPerSec), Unit: prtg.UnitSpeedDisk})
	doc.Add(prtg.Result{Channel: "Read Latency", Value: usecToMsec(perf.UsecPerReadOp), Unit: prtg.UnitTimeResponse, Float: 1})
	doc.Add(prtg.Result{Channel: "Write Latency", Value: usecToMsec(perf.UsecPerWriteOp), Unit: prtg.UnitTimeResponse, Float: 1})
	doc.Add(prtg.Result{Channel: "Queue Depth", Value: float64(perf.QueueDepth), Unit: prtg.UnitCount})

	return doc, nil
}

// usecToMsec converts latency to the milliseconds TimeResponse expects.
func usecToMsec(usec int64) float64 {
	return float64(usec) / 1000
}
