package binding

import "fmt"

// Mode controls the direction of value flow between a binding's source
// and target.
type Mode int

const (
	// ModeDefault defers to the target property's declared default mode.
	ModeDefault Mode = iota
	// OneWay propagates changes from source to target only.
	OneWay
	// OneWayToSource propagates changes from target to source only.
	OneWayToSource
	// TwoWay propagates changes in both directions; the direction of a
	// given apply is selected by which side changed.
	TwoWay
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case OneWay:
		return "one-way"
	case OneWayToSource:
		return "one-way-to-source"
	case TwoWay:
		return "two-way"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// effective resolves ModeDefault against the target property's declared
// default mode. A property that itself declares ModeDefault resolves to
// OneWay.
func (m Mode) effective(property *Property) Mode {
	if m != ModeDefault {
		return m
	}
	if property != nil && property.defaultMode != ModeDefault {
		return property.defaultMode
	}
	return OneWay
}
