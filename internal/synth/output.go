package synth

import (
	"sync"

	"github.com/gopxl/beep/speaker"
)

// Output plays an engine through the system speaker
type Output struct {
	mu          sync.Mutex
	engine      *Engine
	initialized bool
}

// NewOutput creates an output for e. Nothing is opened until Start.
func NewOutput(e *Engine) *Output {
	return &Output{engine: e}
}

// Start opens the speaker and begins pulling samples from the engine.
func (o *Output) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}

	rate := o.engine.SampleRate()
	if err := speaker.Init(rate, rate.N(o.engine.cfg.BufferSize)); err != nil {
		return err
	}

	speaker.Play(o.engine)
	o.initialized = true
	return nil
}

// Stop releases every held note and closes the speaker.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}

	o.engine.ReleaseAll()
	speaker.Close()
	o.initialized = false
}
