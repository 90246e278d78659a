// SPDX-License-Identifier: GPL-3.0-or-later

// Package reconcile keeps the set of provisioned per-volume sensors in sync
// with the set of volumes reported by the array. Each run computes a plan
// (sensors to create, sensors to delete) and applies it action by action.
package reconcile

import "sort"

// Deletion is one sensor scheduled for removal.
type Deletion struct {
	Volume   string
	SensorID string
}

// Plan is the set of actions needed to bring the sensor set in line
// with the volume set. Create and Delete never share a volume.
type Plan struct {
	Create []string
	Delete []Deletion
}

// Empty reports whether the plan has no actions.
func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Delete) == 0
}

// BuildPlan diffs the array's volumes against the recorded sensors.
// Volumes without a sensor go into Create, sensors without a volume into
// Delete. Duplicate volume names are collapsed, output order is sorted
// so repeated runs produce identical plans.
func BuildPlan(volumes []string, known map[string]string) Plan {
	var plan Plan

	present := make(map[string]bool, len(volumes))
	for _, volume := range volumes {
		if volume == "" || present[volume] {
			continue
		}
		present[volume] = true
		if _, ok := known[volume]; !ok {
			plan.Create = append(plan.Create, volume)
		}
	}

	for volume, sensorID := range known {
		if !present[volume] {
			plan.Delete = append(plan.Delete, Deletion{Volume: volume, SensorID: sensorID})
		}
	}

	sort.Strings(plan.Create)
	sort.Slice(plan.Delete, func(i, j int) bool { return plan.Delete[i].Volume < plan.Delete[j].Volume })

	return plan
}
