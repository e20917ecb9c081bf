package driver

// State is a driver's availability.
type State int

const (
	// Unknown catches uninitialised values.
	Unknown State = iota
	// Available drivers can take a batch.
	Available
	// Busy drivers are delivering a batch.
	Busy
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Available: "Available",
		Busy:      "Busy",
	}
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
