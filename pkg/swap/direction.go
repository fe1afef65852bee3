package swap

import (
	"gitlab.com/tozd/go/errors"
)

// 🧭 Direction selects which of a rule's two values is written into documents
type Direction string

const (
	// DirectionToCommitted replaces working values with committed values.
	DirectionToCommitted Direction = "to_committed"
	// DirectionToWorking replaces committed values with working values.
	DirectionToWorking Direction = "to_working"
)

// 🎯 ParseDirection validates a direction flag value
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionToCommitted, DirectionToWorking:
		return Direction(s), nil
	default:
		return "", errors.Errorf("invalid direction %q (must be %q or %q)", s, DirectionToCommitted, DirectionToWorking)
	}
}

// String returns the flag representation of the direction.
func (d Direction) String() string {
	return string(d)
}
