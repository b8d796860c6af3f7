package scan

// Selected reports whether the container tag map qualifies a file for
// conversion. Both the marker tag name and the expected value are matched
// exactly and case-sensitively: "VOCALS" does not match "vocals", and a
// value of "1 " does not match "1".
//
// An empty marker selects every file (convert-all mode).
func Selected(tags map[string]string, marker, want string) bool {
	if marker == "" {
		return true
	}
	value, ok := tags[marker]
	if !ok {
		return false
	}
	return value == want
}
