// SPDX-License-Identifier: GPL-3.0-or-later

package reconcile

import (
	"fmt"
	"log/slog"

	"github.com/prtg-sensors/flasharray/logger"
)

// Backend provisions and removes monitor sensors.
type Backend interface {
	// Clone creates a new sensor for the volume and returns its id.
	// New sensors start disabled.
	Clone(volume string) (string, error)
	// Configure points the sensor at the volume.
	Configure(id, volume string) error
	// Enable starts the sensor.
	Enable(id string) error
	// Delete removes the sensor.
	Delete(id string) error
}

// Store is the durable record of provisioned sensors.
type Store interface {
	Records() map[string]string
	Put(volume, sensorID string) error
	Remove(volume string) error
}

// Summary is the outcome of one reconciliation run.
type Summary struct {
	Created int
	Deleted int
	Failed  int
}

// Status is the scan status channel value. The run itself succeeded even
// when individual actions failed, failures are reported via the text.
func (s Summary) Status() int64 { return 1 }

// Text is the sensor message describing the run.
func (s Summary) Text() string {
	if s.Created == 0 && s.Deleted == 0 && s.Failed == 0 {
		return "sensors in sync"
	}
	return fmt.Sprintf("created %d, deleted %d, failed %d", s.Created, s.Deleted, s.Failed)
}

// Reconciler applies reconciliation plans against a backend and a store.
type Reconciler struct {
	*logger.Logger

	backend Backend
	store   Store
}

// New returns a Reconciler working against the given backend and store.
func New(backend Backend, store Store) *Reconciler {
	return &Reconciler{
		Logger:  logger.New().With(slog.String("component", "reconciler")),
		backend: backend,
		store:   store,
	}
}

// Run brings the sensor set in line with the given volumes. Each action is
// independent: a failed create or delete is logged and counted, the run
// carries on with the remaining actions.
func (r *Reconciler) Run(volumes []string) Summary {
	plan := BuildPlan(volumes, r.store.Records())

	var sum Summary

	for _, volume := range plan.Create {
		if err := r.create(volume); err != nil {
			r.Errorf("create sensor for volume '%s': %v", volume, err)
			sum.Failed++
			continue
		}
		sum.Created++
	}

	for _, del := range plan.Delete {
		if err := r.delete(del); err != nil {
			r.Errorf("delete sensor %s of volume '%s': %v", del.SensorID, del.Volume, err)
			sum.Failed++
			continue
		}
		sum.Deleted++
	}

	r.Infof("reconciled %d volumes: %s", len(volumes), sum.Text())

	return sum
}

// create provisions a sensor for the volume. The id is recorded before the
// sensor is configured and enabled: losing the record of a live sensor
// would leak a duplicate on the next run, while a recorded half-configured
// sensor is merely misnamed.
func (r *Reconciler) create(volume string) error {
	id, err := r.backend.Clone(volume)
	if err != nil {
		return err
	}

	if err := r.store.Put(volume, id); err != nil {
		r.Errorf("sensor %s created but not recorded, remove it manually: %v", id, err)
		return err
	}

	if err := r.backend.Configure(id, volume); err != nil {
		return err
	}
	if err := r.backend.Enable(id); err != nil {
		return err
	}

	r.Debugf("created sensor %s for volume '%s'", id, volume)

	return nil
}

// delete removes the sensor and, only once the backend confirms,
// drops it from the store.
func (r *Reconciler) delete(del Deletion) error {
	if err := r.backend.Delete(del.SensorID); err != nil {
		return err
	}
	if err := r.store.Remove(del.Volume); err != nil {
		return err
	}

	r.Debugf("deleted sensor %s of volume '%s'", del.SensorID, del.Volume)

	return nil
}
