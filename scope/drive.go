// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
)

// Drive reports the status of every drive, one channel per drive with the
// numeric status code and a value lookup.
func Drive(client *flasharray.Client) (*prtg.Document, error) {
	drives, err := client.Drives()
	if err != nil {
		return nil, fmt.Errorf("query drives: %w", err)
	}

	doc := prtg.New()
	var unhealthy int
	for _, drive := range drives {
		status := flasharray.ParseDriveStatus(drive.Status)
		switch status {
		case flasharray.DriveStatusUnhealthy, flasharray.DriveStatusFailed, flasharray.DriveStatusMissing:
			unhealthy++
		}
		doc.Add(prtg.Result{
			Channel:     drive.Name,
			Value:       float64(status.Code()),
			Unit:        prtg.UnitCustom,
			ValueLookup: status.Lookup(),
		})
	}

	if unhealthy > 0 {
		doc.SetText(fmt.Sprintf("%d of %d drives unhealthy", unhealthy, len(drives)))
	} else {
		doc.SetText(fmt.Sprintf("%d drives healthy", len(drives)))
	}

	return doc, nil
}
