package util

import (
	"fmt"
	"runtime"
	"strings"
)

// GetTrace produces the string representation of the caller's stack, omitting runtime frames
func GetTrace() string {
	var pc [16]uintptr
	var res strings.Builder
	frames := runtime.CallersFrames(pc[:runtime.Callers(3, pc[:])])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			return res.String()
		}
	}
}

// FormatMultiError formats the failures of an emission pass, one per block. It
// satisfies multierror.ErrorFormatFunc.
func FormatMultiError(merrs []error) string {
	var res strings.Builder
	fmt.Fprintf(&res, "%d records could not be emitted:\n", len(merrs))
	for _, err := range merrs {
		fmt.Fprintf(&res, "\t* %+v\n", err)
	}
	return res.String()
}
