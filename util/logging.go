package util

import (
	"fmt"

	"github.com/golang/glog"
)

var LoggingEnabled = false

// LogF traces protocol activity. Nothing is written to stdout, which carries
// the language server protocol.
func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}
