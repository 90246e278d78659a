// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
)

// Hardware reports the status of every hardware component, one channel per
// component with the numeric status code and a value lookup.
func Hardware(client *flasharray.Client) (*prtg.Document, error) {
	components, err := client.Hardware()
	if err != nil {
		return nil, fmt.Errorf("query hardware: %w", err)
	}

	doc := prtg.New()
	var notOK int
	for _, hw := range components {
		status := flasharray.ParseHardwareStatus(hw.Status)
		if status != flasharray.HardwareStatusOK && status != flasharray.HardwareStatusNotInstalled {
			notOK++
		}
		doc.Add(prtg.Result{
			Channel:     hw.Name,
			Value:       float64(status.Code()),
			Unit:        prtg.UnitCustom,
			ValueLookup: status.Lookup(),
		})
	}

	if notOK > 0 {
		doc.SetText(fmt.Sprintf("%d of %d components not ok", notOK, len(components)))
	} else {
		doc.SetText(fmt.Sprintf("%d components ok", len(components)))
	}

	return doc, nil
}
