package barcode

// Reason tags why a read was rejected.
type Reason uint8

const (
	None Reason = iota
	Malformed
	Cb1Unmatched
	Cb2Unmatched
	Cb3Unmatched
	Cb4Unmatched
	Cb1Ambiguous
	Cb2Ambiguous
	Cb3Ambiguous
	Cb4Ambiguous

	// NumReasons is the number of Reason values, for counting arrays.
	NumReasons int = iota
)

var reasonNames = [NumReasons]string{
	None:         "none",
	Malformed:    "malformed read",
	Cb1Unmatched: "cb1 unmatched",
	Cb2Unmatched: "cb2 unmatched",
	Cb3Unmatched: "cb3 unmatched",
	Cb4Unmatched: "cb4 unmatched",
	Cb1Ambiguous: "cb1 ambiguous",
	Cb2Ambiguous: "cb2 ambiguous",
	Cb3Ambiguous: "cb3 ambiguous",
	Cb4Ambiguous: "cb4 ambiguous",
}

func (r Reason) String() string {
	if int(r) < NumReasons {
		return reasonNames[r]
	}
	return "unknown"
}

// Position returns the 1-based barcode position a reason refers to, or 0
// for reasons that are not tied to a position.
func (r Reason) Position() int {
	switch {
	case r >= Cb1Unmatched && r <= Cb4Unmatched:
		return int(r-Cb1Unmatched) + 1
	case r >= Cb1Ambiguous && r <= Cb4Ambiguous:
		return int(r-Cb1Ambiguous) + 1
	default:
		return 0
	}
}
