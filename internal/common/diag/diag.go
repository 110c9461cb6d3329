// Released under an MIT license. See LICENSE.

// Package diag reports errors to the user and traces job control activity.
package diag

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/michaelmacinnis/adapted"
)

// Name prefixes every diagnostic.
const Name = "tish"

//nolint:gochecknoglobals
var failure = color.New(color.FgRed)

// Configure sends log output to standard error. Tracing is enabled when
// debug is true.
func Configure(debug bool) {
	_ = flag.Set("logtostderr", "true")

	if debug {
		_ = flag.Set("v", "1")
	}

	if !flag.Parsed() {
		_ = flag.CommandLine.Parse(nil)
	}
}

// Error writes err to w as a diagnostic.
func Error(w io.Writer, err error) {
	failure.Fprintf(w, "%s: %v\n", Name, err)
}

// Flush writes any buffered log output.
func Flush() {
	glog.Flush()
}

// Quote renders argv with each element in canonical quoted form.
func Quote(argv []string) string {
	qs := make([]string, len(argv))
	for i, a := range argv {
		qs[i] = adapted.CanonicalString(a)
	}

	return strings.Join(qs, " ")
}

// Trace logs a job control event when tracing is enabled.
func Trace(format string, args ...interface{}) {
	if glog.V(1) {
		glog.InfoDepth(1, fmt.Sprintf(format, args...))
	}
}
