package poller

import (
	"fmt"
	"strconv"
	"time"
)

// Mode selects the tick interval and the history length of a display.
type Mode string

const (
	ModeSeconds Mode = "seconds"
	ModeHours   Mode = "hours"
)

type modeMeta struct {
	Interval time.Duration
	Capacity int
}

var modes = map[Mode]modeMeta{
	ModeSeconds: {Interval: 5 * time.Second, Capacity: 30}, // last 30 ticks, 5s apart
	ModeHours:   {Interval: time.Hour, Capacity: 24},       // last 24 hours
}

// ParseMode parses "seconds" or "hours". Empty input selects seconds.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeSeconds, nil
	}
	m := Mode(s)
	if _, ok := modes[m]; !ok {
		return "", fmt.Errorf("invalid mode: %q", s)
	}
	return m, nil
}

func (m Mode) Interval() time.Duration {
	return modes[m].Interval
}

func (m Mode) Capacity() int {
	return modes[m].Capacity
}

// Labels returns the fixed x-axis labels of the chart: 0s,5s,... or 1h,2h,...
func (m Mode) Labels() []string {
	n := m.Capacity()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if m == ModeHours {
			out[i] = strconv.Itoa(i+1) + "h"
		} else {
			out[i] = strconv.Itoa(i*5) + "s"
		}
	}
	return out
}
