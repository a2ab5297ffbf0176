package status

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Metric is one value shown on the status line
type Metric interface {
	Format() string
}

// Counter is a monotonic or overwritten integer
type Counter struct {
	v atomic.Int64
}

func (c *Counter) Add(n int)      { c.v.Add(int64(n)) }
func (c *Counter) Set(n int)      { c.v.Store(int64(n)) }
func (c *Counter) Value() int64   { return c.v.Load() }
func (c *Counter) Format() string { return strconv.FormatInt(c.v.Load(), 10) }

// Flag is a yes/no state
type Flag struct {
	v atomic.Bool
}

func (f *Flag) Set(b bool)     { f.v.Store(b) }
func (f *Flag) Value() bool    { return f.v.Load() }
func (f *Flag) Format() string { return strconv.FormatBool(f.v.Load()) }

// MaxLabelLen caps labels so the status line stays one row
const MaxLabelLen = 16

// Label is a short text state such as the gesture name
type Label struct {
	v atomic.Pointer[string]
}

// Set stores s cut to MaxLabelLen bytes
func (l *Label) Set(s string) {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	l.v.Store(&s)
}

func (l *Label) Value() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Label) Format() string { return l.Value() }

// Clock accumulates simulated play time
type Clock struct {
	v atomic.Int64
}

func (c *Clock) Advance(dt time.Duration) { c.v.Add(int64(dt)) }
func (c *Clock) Reset()                   { c.v.Store(0) }
func (c *Clock) Elapsed() time.Duration   { return time.Duration(c.v.Load()) }

// Format renders whole seconds with one decimal
func (c *Clock) Format() string {
	return strconv.FormatFloat(c.Elapsed().Seconds(), 'f', 1, 64)
}
