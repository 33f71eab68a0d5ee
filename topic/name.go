package topic

// Name is a validated PUBLISH topic name: non-empty, wildcard-free, valid UTF-8.
type Name struct {
	value string
}

// NewName validates s as a topic name and wraps it.
func NewName(s string) (Name, error) {
	if err := ValidateTopic(s); err != nil {
		return Name{}, err
	}
	return Name{value: s}, nil
}

// UnsafeName wraps s as a topic name without validation, for callers that already trust it
// (e.g. re-encoding a Name obtained from a prior NewName/decode).
func UnsafeName(s string) Name {
	return Name{value: s}
}

// String returns the underlying topic string.
func (n Name) String() string {
	return n.value
}

// IsZero reports whether n is the zero value (no topic set).
func (n Name) IsZero() bool {
	return n.value == ""
}
