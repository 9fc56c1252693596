// Package naming parses intake file names against the client delivery
// naming convention.
//
// A conforming name has exactly four dot-separated segments:
//
//	<client>.<DDMMYY>.<DDMMYY>.<ext>
//
// where <client> is one or more ASCII letters, the two date tokens are the
// start and end of the file's reporting range in day-month-year order, and
// <ext> is one of "xml", "csv" or "json" in lower case. The whole name must
// match: extra segments, unknown extensions, non-calendar dates, inverted
// ranges, or path separators all make a name invalid.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the fixed-width day-month-year layout of the two date
// tokens. Two-digit years follow the usual pivot: 69-99 resolve to 19xx,
// 00-68 to 20xx.
const DateLayout = "020106"

// ErrInvalidName marks names that fail the naming convention. Classify
// parse failures with errors.Is; the wrapped message says which rule broke.
var ErrInvalidName = errors.New("invalid file name")

// namePattern matches the full four-segment grammar. Extension matching is
// case-sensitive: "CSV" does not conform.
var namePattern = regexp.MustCompile(`^([A-Za-z]+)\.(\d{6})\.(\d{6})\.(xml|csv|json)$`)

// FileName is the parsed, validated form of a raw intake file name.
type FileName struct {
	Client     string    // Alphabetic client token
	RangeStart time.Time // First day of the reporting range
	RangeEnd   time.Time // Last day of the reporting range
	Extension  string    // One of "xml", "csv", "json"
}

// Parse validates raw against the naming convention and returns its parsed
// form. It is a pure function: it never touches the file system, so it is
// safe to call on names that do not correspond to real files.
// All failures wrap ErrInvalidName.
func Parse(raw string) (FileName, error) {
	if raw == "" {
		return FileName{}, fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	// A bare file name never contains path separators; rejecting them here
	// guarantees that no downstream path is ever built from a hostile name.
	if strings.ContainsAny(raw, `/\`) {
		return FileName{}, fmt.Errorf("%w: contains a path separator", ErrInvalidName)
	}

	m := namePattern.FindStringSubmatch(raw)
	if m == nil {
		return FileName{}, fmt.Errorf("%w: want <client>.<DDMMYY>.<DDMMYY>.<xml|csv|json>", ErrInvalidName)
	}

	start, err := time.Parse(DateLayout, m[2])
	if err != nil {
		return FileName{}, fmt.Errorf("%w: range start %q is not a calendar date", ErrInvalidName, m[2])
	}

	end, err := time.Parse(DateLayout, m[3])
	if err != nil {
		return FileName{}, fmt.Errorf("%w: range end %q is not a calendar date", ErrInvalidName, m[3])
	}

	if end.Before(start) {
		return FileName{}, fmt.Errorf("%w: range end %s precedes range start %s", ErrInvalidName, m[3], m[2])
	}

	return FileName{
		Client:     m[1],
		RangeStart: start,
		RangeEnd:   end,
		Extension:  m[4],
	}, nil
}

// StartToken returns the fixed-width DDMMYY token of the range start. The
// store uses it as the first directory level, so files keep the exact token
// they were named with.
func (fn FileName) StartToken() string {
	return fn.RangeStart.Format(DateLayout)
}

// EndToken returns the fixed-width DDMMYY token of the range end.
func (fn FileName) EndToken() string {
	return fn.RangeEnd.Format(DateLayout)
}

// String reassembles the canonical file name.
func (fn FileName) String() string {
	return fmt.Sprintf("%s.%s.%s.%s", fn.Client, fn.StartToken(), fn.EndToken(), fn.Extension)
}
