// SPDX-License-Identifier: GPL-3.0-or-later

package scope

import (
	"fmt"

	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
	"github.com/prtg-sensors/flasharray/reconcile"
)

// VolumeMgmt reconciles the per-volume sensor set against the array's
// volumes. The listing must succeed, otherwise no plan can be built; once
// the plan runs, individual action failures only show up in the text.
func VolumeMgmt(client *flasharray.Client, backend reconcile.Backend, store reconcile.Store) (*prtg.Document, error) {
	volumes, err := client.VolumeNames()
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}

	sum := reconcile.New(backend, store).Run(volumes)

	doc := prtg.New()
	doc.Add(prtg.Result{Channel: "Scan Status", Value: float64(sum.Status()), Unit: prtg.UnitCount})
	doc.SetText(sum.Text())

	return doc, nil
}
