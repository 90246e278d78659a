// SPDX-License-Identifier: GPL-3.0-or-later

package prtgapi

import (
	"fmt"
	"log/slog"

	"github.com/prtg-sensors/flasharray/logger"
)

// Provisioner provisions per-volume sensors by cloning a template sensor.
// It satisfies the reconcile.Backend interface.
type Provisioner struct {
	*logger.Logger

	client     *Client
	templateID string
	groupID    string
}

// NewProvisioner returns a Provisioner cloning templateID into groupID.
func NewProvisioner(client *Client, templateID, groupID string) *Provisioner {
	return &Provisioner{
		Logger:     logger.New().With(slog.String("component", "provisioner")),
		client:     client,
		templateID: templateID,
		groupID:    groupID,
	}
}

// Clone duplicates the template sensor for the volume and returns the new sensor id.
func (p *Provisioner) Clone(volume string) (string, error) {
	name := SensorName(volume)
	id, err := p.client.DuplicateObject(p.templateID, name, p.groupID)
	if err != nil {
		return "", err
	}
	p.Debugf("cloned sensor '%s' (id %s) from template %s", name, id, p.templateID)
	return id, nil
}

// Configure points the cloned sensor at the volume.
func (p *Provisioner) Configure(id, volume string) error {
	params := fmt.Sprintf("--scope volume --volume %s", volume)
	return p.client.SetObjectProperty(id, "exeparams", params)
}

// Enable resumes the sensor (clones are created paused).
func (p *Provisioner) Enable(id string) error {
	return p.client.Resume(id)
}

// Delete removes the sensor.
func (p *Provisioner) Delete(id string) error {
	return p.client.DeleteObject(id)
}

// SensorName is the display name of a per-volume sensor.
func SensorName(volume string) string {
	return "Volume " + volume
}
