package batch

// Trigger records which rule formed a batch.
type Trigger int

const (
	// NoTrigger means no rule fired.
	NoTrigger Trigger = iota
	// SizeTrigger fires when a zone queue reaches the maximum batch size.
	SizeTrigger
	// AgeTrigger fires when the oldest queued order has waited long enough.
	AgeTrigger
)

func (t Trigger) String() string {
	switch t { //nolint:exhaustive // NoTrigger and unknown values share the default
	case SizeTrigger:
		return "size"
	case AgeTrigger:
		return "age"
	default:
		return "none"
	}
}
