// Package timeline provides a tag-prefixed, timestamped trace facility for
// the CLI drivers. It exists so driver internals can narrate what they are
// doing without the core compressor and decompressor packages ever knowing
// a trace facility exists.
package timeline

import (
	"fmt"
	"strings"
	"time"
)

// enabled is a single process-wide switch; every Tracer consults it once, at
// construction, rather than on each Trace call.
var enabled bool

// Enable turns the trace facility on or off for every Tracer created
// afterward. It does not affect Tracers already constructed.
func Enable(on bool) {
	enabled = on
}

// Enabled reports the current process-wide setting.
func Enabled() bool {
	return enabled
}

// Tracer prints timestamped lines under a fixed tag, if tracing was enabled
// at the time the Tracer was created.
type Tracer struct {
	tag     string
	enabled bool
}

// New creates a Tracer under tag, capturing the current value of Enabled().
func New(tag string) *Tracer {
	return &Tracer{tag: tag, enabled: enabled}
}

// Trace prints args, concatenated with no separator, prefixed by the
// current time and the Tracer's tag. It is a no-op if tracing was disabled
// when the Tracer was created.
func (t *Tracer) Trace(args ...interface{}) {
	if !t.enabled {
		return
	}
	var b strings.Builder
	for _, a := range args {
		fmt.Fprint(&b, a)
	}
	fmt.Printf("[%s] {%s} %s\n", time.Now().Format("15:04:05"), t.tag, b.String())
}
