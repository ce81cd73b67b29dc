package popularity

import (
	"errors"
	"fmt"
	"time"
)

// Window is the publication period a ranking looks at.
type Window int

const (
	Day Window = iota
	Week
	Month
	AllTime
)

// Windows lists every window in the order the main page shows them.
var Windows = []Window{Day, Week, Month, AllTime}

var ErrUnknownWindow = errors.New("unknown popularity window")

var windowNames = map[Window]string{
	Day:     "day",
	Week:    "week",
	Month:   "month",
	AllTime: "all",
}

func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// Duration returns the window length. AllTime is unbounded and reports false.
func (w Window) Duration() (time.Duration, bool) {
	switch w {
	case Day:
		return 24 * time.Hour, true
	case Week:
		return 7 * 24 * time.Hour, true
	case Month:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

func ParseWindow(s string) (Window, error) {
	for w, name := range windowNames {
		if name == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}
