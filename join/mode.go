package join

import (
	"fmt"
	"strings"
)

// Mode selects how matched and unmatched rows are combined.
type Mode int

const (
	Inner   Mode = iota // matched rows only
	Left                // every left row, right columns null when unmatched
	Right               // matched rows, then unmatched right rows
	Full                // every left row, then unmatched right rows
	Filter              // left rows with a match, left columns only
	Exclude             // left rows without a match, left columns only
)

var modeNames = [...]string{
	Inner:   "inner",
	Left:    "left",
	Right:   "right",
	Full:    "full",
	Filter:  "filter",
	Exclude: "exclude",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name such as "left" into a Mode. Matching is
// case-insensitive.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return Inner, fmt.Errorf("unknown join mode %q (expected one of %s)", s, strings.Join(modeNames[:], ", "))
}

// Merging reports whether the output holds columns of both sides.
func (m Mode) Merging() bool {
	return m <= Full
}

func (m Mode) keepsUnmatchedLeft() bool {
	return m == Left || m == Full
}

func (m Mode) keepsUnmatchedRight() bool {
	return m == Right || m == Full
}
