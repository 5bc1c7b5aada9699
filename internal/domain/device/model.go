// Package device models devices attached to a procedure and the rules for
// their implant status.
package device

import (
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// Status is whether a procedure put a device in or took it out.
type Status string

const (
	StatusImplanted Status = "Implanted"
	StatusRemoved   Status = "Removed"
)

// Assignment is a catalogue device attached to a procedure. Status is left
// empty unless it was recorded explicitly, so it can be re-derived from the
// procedure outcome. ProcedureID and ProcedureDate are filled only on a
// patient's derived device list.
type Assignment struct {
	catalog.Device
	Status        Status `json:"status,omitempty"`
	ProcedureID   string `json:"procedureId,omitempty"`
	ProcedureDate string `json:"procedureDate,omitempty"`
}

// NewAssignment wraps a freshly looked-up catalogue device.
func NewAssignment(d catalog.Device) Assignment {
	return Assignment{Device: d}
}

// Key identifies the physical device instance.
func (a Assignment) Key() string {
	return lookup.NormalizeIdentifier(a.UDI, lookup.KindDevice)
}

// InferStatus derives a device's status. An explicit status wins; otherwise
// devices on a device-removal procedure are Removed and all others Implanted.
func InferStatus(outcome catalog.Outcome, explicit Status) Status {
	if explicit != "" {
		return explicit
	}
	if outcome == catalog.OutcomeDeviceRemoval {
		return StatusRemoved
	}
	return StatusImplanted
}

// Resolved returns the assignment with its status filled in for outcome.
func (a Assignment) Resolved(outcome catalog.Outcome) Assignment {
	a.Status = InferStatus(outcome, a.Status)
	return a
}
