// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
)

// Volume reports space usage of a single named volume.
func Volume(client *flasharray.Client, name string) (*prtg.Document, error) {
	space, err := client.VolumeSpace(name)
	if err != nil {
		return nil, fmt.Errorf("query volume '%s' space: %w", name, err)
	}

	var usedPct float64
	if space.Size > 0 {
		usedPct = float64(space.Total) / float64(space.Size) * 100
	}

	warn, crit := prtg.Limits(usedWarningPct, usedErrorPct)

	doc := prtg.New()
	doc.Add(prtg.Result{Channel: "Size", Value: float64(space.Size), Unit: prtg.UnitBytesDisk})
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
	doc.Add(prtg.Result{Channel: "Snapshots", Value: float64(space.Snapshots), Unit: prtg.UnitBytesDisk})
	doc.Add(prtg.Result{Channel: "Data Reduction", Value: space.DataReduction, Unit: prtg.UnitCustom, CustomUnit: "x", Float: 1})
	doc.SetText(fmt.Sprintf("%s: %.1f%% used", space.Name, usedPct))

	return doc, nil
}
