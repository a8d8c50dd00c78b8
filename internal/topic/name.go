// Package topic implements MQTT-style topic names and filters.
//
// A Name is a concrete, wildcard-free topic string. A Filter is a
// /-separated pattern that may contain the single-level wildcard "+" and the
// terminal multi-level wildcard "#" (or "*", treated as an alias). Filters are
// compiled once at construction so repeated matching stays allocation-free.
package topic

import (
	"fmt"
	"strings"
)

// maxTopicBytes is the MQTT 3.1.1 limit on topic name and filter length.
const maxTopicBytes = 65535

// Name is a validated concrete topic name.
type Name struct {
	value string
}

// NewName validates value and returns it as a Name. It fails when value is
// empty, longer than 65535 bytes, or contains a wildcard character.
func NewName(value string) (Name, error) {
	if value == "" {
		return Name{}, fmt.Errorf("topic name cannot be empty")
	}
	if len(value) > maxTopicBytes {
		return Name{}, fmt.Errorf("topic name cannot exceed %d bytes", maxTopicBytes)
	}
	if strings.ContainsAny(value, "+#*") {
		return Name{}, fmt.Errorf("topic name %q cannot contain wildcard characters", value)
	}
	return Name{value: value}, nil
}

// IsServerSpecific reports whether the name is reserved for the server.
// Names beginning with '$' (e.g. "$SYS/session") are server-internal and only
// match filters that name the '$' level explicitly.
func (n Name) IsServerSpecific() bool {
	return strings.HasPrefix(n.value, "$")
}

func (n Name) String() string {
	return n.value
}
