// Package symdelerr defines the symdel error taxonomy: a set of sentinel
// kinds, each wrapping the offending parameter(s) so callers get a
// descriptive message including the offending value and the legal bound.
package symdelerr

import "fmt"

type kind string

func (k kind) Error() string {
	return string(k)
}

// Sentinel kinds. Compare against these with errors.Is; the concrete errors
// returned by this package wrap one of them.
const (
	// KindNonAsciiInput is raised by the ingest collaborator, not the core,
	// when a byte outside 0x00-0x7F is encountered.
	KindNonAsciiInput = kind("non-ascii input")
	// KindMaxDistCapped is raised when the caller passes k == 255.
	KindMaxDistCapped = kind("max distance capped")
	// KindTooManyStrings is raised when a collection exceeds the
	// side-specific index capacity.
	KindTooManyStrings = kind("too many strings")
	// KindMaxDistTooLargeForCache is raised when a query's k exceeds the
	// construction-time k of a CachedRef involved in the query.
	KindMaxDistTooLargeForCache = kind("max distance exceeds cache bound")
)

// NonAsciiInput reports a non-ASCII byte found at rowIndex in s.
func NonAsciiInput(rowIndex int, s string) error {
	return fmt.Errorf("%w: row %d: %q contains a non-ASCII byte", KindNonAsciiInput, rowIndex, s)
}

// MaxDistCapped reports an attempt to use the reserved sentinel distance
// (255) as a max-distance parameter.
func MaxDistCapped() error {
	return fmt.Errorf("%w: max_distance is capped at 254, got 255", KindMaxDistCapped)
}

// Side identifies which collection overflowed its index capacity.
type Side int

const (
	SideWithin Side = iota
	SideQuery
	SideReference
)

func (s Side) String() string {
	switch s {
	case SideQuery:
		return "query"
	case SideReference:
		return "reference"
	default:
		return "within"
	}
}

// TooManyStrings reports a collection of count strings exceeding limit for
// the given side.
func TooManyStrings(side Side, count int, limit uint64) error {
	return fmt.Errorf("%w: %s collection must not hold more than %d elements, got %d", KindTooManyStrings, side, limit, count)
}

// MaxDistTooLargeForCache reports a query max-distance exceeding a cached
// reference's construction-time bound.
func MaxDistTooLargeForCache(got, limit uint8) error {
	return fmt.Errorf("%w: got %d, cache instance not compatible with max_distance above %d", KindMaxDistTooLargeForCache, got, limit)
}
