package device

import (
	"errors"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/lookup"
)

// ErrDuplicateDevice is returned when a device with the same UDI is already
// in the set.
var ErrDuplicateDevice = errors.New("device has already been added")

// Set is the ordered device list of the procedure being built. UDIs are
// unique within it.
type Set []Assignment

// Add appends a unless its UDI is already present, in which case the set is
// left unchanged and ErrDuplicateDevice is returned.
func (s *Set) Add(a Assignment) error {
	if s.Contains(a.UDI) {
		return ErrDuplicateDevice
	}
	*s = append(*s, a)
	return nil
}

// Contains compares normalised UDIs.
func (s Set) Contains(udi string) bool {
	key := lookup.NormalizeIdentifier(udi, lookup.KindDevice)
	if key == "" {
		return false
	}
	for _, a := range s {
		if a.Key() == key {
			return true
		}
	}
	return false
}

// Remove drops the device with the given UDI. It reports whether anything
// was removed.
func (s *Set) Remove(udi string) bool {
	key := lookup.NormalizeIdentifier(udi, lookup.KindDevice)
	for i, a := range *s {
		if a.Key() == key {
			*s = append((*s)[:i:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone copies the set. The copy is never nil.
func (s Set) Clone() Set {
	return append(Set{}, s...)
}
