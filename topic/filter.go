package topic

// Filter is a validated SUBSCRIBE/UNSUBSCRIBE topic filter, which may contain the '+' and '#'
// wildcards.
type Filter struct {
	value string
}

// NewFilter validates s as a topic filter and wraps it.
func NewFilter(s string) (Filter, error) {
	if err := ValidateTopicFilter(s); err != nil {
		return Filter{}, err
	}
	return Filter{value: s}, nil
}

// UnsafeFilter wraps s as a topic filter without validation.
func UnsafeFilter(s string) Filter {
	return Filter{value: s}
}

// String returns the underlying filter string.
func (f Filter) String() string {
	return f.value
}

// Matches reports whether name matches this filter, per MQTT-4.7's wildcard and
// '$'-prefix rules.
func (f Filter) Matches(name Name) bool {
	return matchTopicFilter(f.value, name.value)
}
