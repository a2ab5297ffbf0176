// Package status holds the counters a play session updates every tick and the
// status line reads; values are atomic so other goroutines may sample them
package status

import (
	"strings"
)

// Metric keys, in the order Snapshot lists them
const (
	KeyGesture    = "gesture"
	KeyComplete   = "complete"
	KeyTotal      = "total"
	KeySolved     = "solved"
	KeyTicks      = "ticks"
	KeyDrags      = "drags"
	KeyGroupDrags = "group_drags"
	KeyJoins      = "joins"
	KeyElapsed    = "elapsed_s"
)

// Keys lists every metric key
var Keys = []string{
	KeyGesture, KeyComplete, KeyTotal, KeySolved,
	KeyTicks, KeyDrags, KeyGroupDrags, KeyJoins, KeyElapsed,
}

// Registry is the metric set of one session
type Registry struct {
	Gesture    Label
	Complete   Counter // pieces fully and correctly joined at the last evaluation
	Total      Counter
	Solved     Flag
	Ticks      Counter
	Drags      Counter
	GroupDrags Counter
	Joins      Counter
	Elapsed    Clock
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Metric returns the metric stored under key
func (r *Registry) Metric(key string) (Metric, bool) {
	switch key {
	case KeyGesture:
		return &r.Gesture, true
	case KeyComplete:
		return &r.Complete, true
	case KeyTotal:
		return &r.Total, true
	case KeySolved:
		return &r.Solved, true
	case KeyTicks:
		return &r.Ticks, true
	case KeyDrags:
		return &r.Drags, true
	case KeyGroupDrags:
		return &r.GroupDrags, true
	case KeyJoins:
		return &r.Joins, true
	case KeyElapsed:
		return &r.Elapsed, true
	}
	return nil, false
}

// Snapshot formats every metric into a flat map
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		m, _ := r.Metric(k)
		out[k] = m.Format()
	}
	return out
}

// Line formats the given keys as "key=value" pairs; unknown keys are skipped
func (r *Registry) Line(keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		m, ok := r.Metric(k)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m.Format())
	}
	return b.String()
}
