// SPDX-License-Identifier: GPL-3.0-or-later

package flasharray

import "strings"

// HardwareStatus is the health status of a hardware component.
// The set is closed: statuses the array reports outside of it map to HardwareStatusUnknown.
type HardwareStatus int

const (
	HardwareStatusOK HardwareStatus = iota
	HardwareStatusNotInstalled
	HardwareStatusIdentifying
	HardwareStatusDegraded
	HardwareStatusCritical
	HardwareStatusUnknown
)

// ParseHardwareStatus maps an array-reported status string to a HardwareStatus.
func ParseHardwareStatus(s string) HardwareStatus {
	switch strings.ToLower(s) {
	case "ok":
		return HardwareStatusOK
	case "not_installed":
		return HardwareStatusNotInstalled
	case "identifying":
		return HardwareStatusIdentifying
	case "degraded":
		return HardwareStatusDegraded
	case "critical":
		return HardwareStatusCritical
	default:
		return HardwareStatusUnknown
	}
}

func (s HardwareStatus) String() string {
	switch s {
	case HardwareStatusOK:
		return "ok"
	case HardwareStatusNotInstalled:
		return "not_installed"
	case HardwareStatusIdentifying:
		return "identifying"
	case HardwareStatusDegraded:
		return "degraded"
	case HardwareStatusCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Code returns the numeric channel value for the status.
func (s HardwareStatus) Code() int64 { return int64(s) }

// Lookup returns the PRTG value lookup table id for hardware status channels.
func (s HardwareStatus) Lookup() string { return "prtg.flasharray.hardware.status" }

// DriveStatus is the health status of a drive.
// The set is closed: statuses the array reports outside of it map to DriveStatusUnknown.
type DriveStatus int

const (
	DriveStatusHealthy DriveStatus = iota
	DriveStatusUnused
	DriveStatusEvacuated
	DriveStatusUpdating
	DriveStatusRecovering
	DriveStatusUnhealthy
	DriveStatusFailed
	DriveStatusMissing
	DriveStatusUnknown
)

// ParseDriveStatus maps an array-reported status string to a DriveStatus.
func ParseDriveStatus(s string) DriveStatus {
	switch strings.ToLower(s) {
	case "healthy":
		return DriveStatusHealthy
	case "unused":
		return DriveStatusUnused
	case "evacuated":
		return DriveStatusEvacuated
	case "updating":
		return DriveStatusUpdating
	case "recovering":
		return DriveStatusRecovering
	case "unhealthy":
		return DriveStatusUnhealthy
	case "failed":
		return DriveStatusFailed
	case "missing":
		return DriveStatusMissing
	default:
		return DriveStatusUnknown
	}
}

func (s DriveStatus) String() string {
	switch s {
	case DriveStatusHealthy:
		return "healthy"
	case DriveStatusUnused:
		return "unused"
	case DriveStatusEvacuated:
		return "evacuated"
	case DriveStatusUpdating:
		return "updating"
	case DriveStatusRecovering:
		return "recovering"
	case DriveStatusUnhealthy:
		return "unhealthy"
	case DriveStatusFailed:
		return "failed"
	case DriveStatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Code returns the numeric channel value for the status.
func (s DriveStatus) Code() int64 { return int64(s) }

// Lookup returns the PRTG value lookup table id for drive status channels.
func (s DriveStatus) Lookup() string { return "prtg.flasharray.drive.status" }
