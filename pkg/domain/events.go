package domain

import "time"

// PassEvent describes one completed pass of the calculation order.
type PassEvent struct {
	Pass     int           `json:"pass"`
	Residual float64       `json:"residual"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed"`
}

// LifecycleHooks defines callbacks for solver observability. Any field may
// be nil. Hooks run synchronously between passes, so they must be cheap.
type LifecycleHooks struct {
	OnPassStart func(pass int)
	OnPassEnd   func(ev PassEvent)
	OnConverged func(passes int, residual float64)
	OnFailure   func(err error)
}

// EmitPassStart invokes OnPassStart when set.
func (h LifecycleHooks) EmitPassStart(pass int) {
	if h.OnPassStart != nil {
		h.OnPassStart(pass)
	}
}

// EmitPassEnd invokes OnPassEnd when set.
func (h LifecycleHooks) EmitPassEnd(ev PassEvent) {
	if h.OnPassEnd != nil {
		h.OnPassEnd(ev)
	}
}

// EmitConverged invokes OnConverged when set.
func (h LifecycleHooks) EmitConverged(passes int, residual float64) {
	if h.OnConverged != nil {
		h.OnConverged(passes, residual)
	}
}

// EmitFailure invokes OnFailure when set.
func (h LifecycleHooks) EmitFailure(err error) {
	if h.OnFailure != nil {
		h.OnFailure(err)
	}
}

// Merge overlays non-nil hooks from other on top of h.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	out := h
	if other.OnPassStart != nil {
		out.OnPassStart = chainPass(h.OnPassStart, other.OnPassStart)
	}
	if other.OnPassEnd != nil {
		out.OnPassEnd = chainPassEnd(h.OnPassEnd, other.OnPassEnd)
	}
	if other.OnConverged != nil {
		out.OnConverged = chainConverged(h.OnConverged, other.OnConverged)
	}
	if other.OnFailure != nil {
		out.OnFailure = chainFailure(h.OnFailure, other.OnFailure)
	}
	return out
}

func chainPass(a, b func(int)) func(int) {
	if a == nil {
		return b
	}
	return func(p int) { a(p); b(p) }
}

func chainPassEnd(a, b func(PassEvent)) func(PassEvent) {
	if a == nil {
		return b
	}
	return func(ev PassEvent) { a(ev); b(ev) }
}

func chainConverged(a, b func(int, float64)) func(int, float64) {
	if a == nil {
		return b
	}
	return func(p int, r float64) { a(p, r); b(p, r) }
}

func chainFailure(a, b func(error)) func(error) {
	if a == nil {
		return b
	}
	return func(err error) { a(err); b(err) }
}
