package autotheme

import (
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Applier wraps a Pipeline with the guards the settings layer needs: a mode
// without a theme is skipped, and nothing is applied while a profile import
// or export is rewriting the settings.
type Applier struct {
	pipeline *Pipeline
	logger   hclog.Logger
	transfer atomic.Bool
}

// NewApplier creates an applier. A nil logger discards output.
func NewApplier(logger hclog.Logger) *Applier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Applier{
		pipeline: NewPipeline(logger),
		logger:   logger.Named("applier"),
	}
}

// Apply runs the pipeline and maps the result onto settings keys.
// It returns ErrNoTheme when in.Theme is ThemeNone and ErrBusy while a
// transfer is in progress; neither leaves any state behind.
func (a *Applier) Apply(in Input) (Result, Settings, error) {
	if in.Theme == ThemeNone {
		a.logger.Debug("skipping mode without theme", "scheme", in.Scheme.String())
		return Result{}, Settings{}, ErrNoTheme
	}
	if a.transfer.Load() {
		a.logger.Debug("skipping apply during transfer")
		return Result{}, Settings{}, ErrBusy
	}

	res, err := a.pipeline.Run(in)
	if err != nil {
		return Result{}, Settings{}, err
	}
	return res, NewSettings(res, in), nil
}

// BeginTransfer holds the guard until the returned release func is called.
// It reports false, with a no-op release, if a transfer is already running.
func (a *Applier) BeginTransfer() (release func(), ok bool) {
	if !a.transfer.CompareAndSwap(false, true) {
		return func() {}, false
	}
	return func() { a.transfer.Store(false) }, true
}

// Transferring reports whether the guard is held.
func (a *Applier) Transferring() bool {
	return a.transfer.Load()
}
