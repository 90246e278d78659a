// SPDX-License-Identifier: GPL-3.0-or-later

// Package scope implements the sensor scopes. Each scope queries the array
// (and, for volumemgmt, the PRTG server), formats the result into a PRTG
// document and returns it. Scopes never print or exit themselves.
package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
)

// Capacity usage limits (percent). PRTG turns the sensor yellow at the
// warning limit and red at the error limit.
const (
	usedWarningPct = 80.0
	usedErrorPct   = 90.0
)

// Capacity reports array space usage.
func Capacity(client *flasharray.Client) (*prtg.Document, error) {
	space, err := client.ArraySpace()
	if err != nil {
		return nil, fmt.Errorf("query array space: %w", err)
	}

	var usedPct float64
	if space.Capacity > 0 {
		usedPct = float64(space.Total) / float64(space.Capacity) * 100
	}

	warn, crit := prtg.Limits(usedWarningPct, usedErrorPct)

	doc := prtg.New()
	doc.Add(prtg.Result{Channel: "Capacity", Value: float64(space.Capacity), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "Used", Value: float64(space.Total), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{
		Channel:         "Used Percent",
		Value:           usedPct,
		Unit:            prtg.UnitPercent,
		Float:           1,
		LimitMode:       1,
		LimitMaxWarning: warn,
		LimitMaxError:   crit,
	})
	doc.Add(prtg.Result{Channel: "Volumes", Value: float64(space.Volumes), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "Snapshots", Value: float64(space.Snapshots), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "Shared Space", Value: float64(space.SharedSpace), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "System", Value: float64(space.System), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "Data Reduction", Value: space.DataReduction, Unit: prtg.UnitCustom, CustomUnit: "x", Float: 1})
	doc.Add(prtg.Result{Channel: "Total Reduction", Value: space.TotalReduction, Unit: prtg.UnitCustom, CustomUnit: "x", Float: 1})
	doc.SetText(fmt.Sprintf("%.1f%% used", usedPct))

	return doc, nil
}
