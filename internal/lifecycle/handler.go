// Package lifecycle times a unit of work and reports the outcome to a handler.
// There is no event bus and no goroutine: Run calls fn and then the handler.
package lifecycle

import "time"

// Handler receives the outcome of a finished run.
type Handler interface {
	// OnRunComplete is called once fn has returned. err is fn's result.
	OnRunComplete(name string, err error, duration time.Duration)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(name string, err error, duration time.Duration)

// OnRunComplete calls f.
func (f HandlerFunc) OnRunComplete(name string, err error, duration time.Duration) {
	f(name, err, duration)
}

// now is replaced in tests.
var now = time.Now

// Run executes fn and reports its duration and error to h. A nil h is allowed.
// fn's error is returned unchanged.
func Run(h Handler, name string, fn func() error) error {
	start := now()
	err := fn()
	if h != nil {
		h.OnRunComplete(name, err, now().Sub(start))
	}
	return err
}
