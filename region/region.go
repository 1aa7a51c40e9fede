package region

import "strings"

// Region selects which contact channel and backend recipient a lead is
// routed to. Exactly one canonical encoding exists in the codebase; every
// other historical encoding (lowercase words, two-letter country codes,
// "global") is accepted only at parse boundaries.
type Region string

const (
	Unspecified Region = "unknown"
	RegionA     Region = "A" // United States, live service area
	RegionB     Region = "B" // India, booking soon
)

// Valid reports whether r is one of the enumerated values.
func (r Region) Valid() bool {
	switch r {
	case Unspecified, RegionA, RegionB:
		return true
	}
	return false
}

func (r Region) String() string {
	return string(r)
}

// Parse maps any region encoding seen on the wire to the canonical
// enumeration. Unrecognized input maps to Unspecified, never an error.
func Parse(s string) Region {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "us", "usa", "united states":
		return RegionA
	case "b", "in", "india":
		return RegionB
	default:
		return Unspecified
	}
}

// InferFromHost guesses a region from the serving hostname. Used only as a
// fallback when no explicit choice has been persisted.
func InferFromHost(host string) Region {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	switch {
	case strings.HasSuffix(host, ".in"):
		return RegionB
	case strings.HasSuffix(host, ".us"), strings.HasSuffix(host, ".com"):
		return RegionA
	}
	return Unspecified
}
