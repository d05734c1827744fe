// Package log provides the module-wide logger: a single go-kit/log
// instance, logfmt-encoded to stdout by default, filterable by level.
package log

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the default logger every package in this module logs
// through. Replace it with SetLogger before doing any work if a host
// wants structured output routed elsewhere.
var Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

// SetLogger replaces Logger, timestamping every line with the caller's
// default format.
func SetLogger(l log.Logger) {
	Logger = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// SetLevel filters Logger so that only entries at or above the named
// level ("debug", "info", "warn", "error") are logged.
func SetLevel(name string) error {
	var lvl level.Option
	switch name {
	case "debug":
		lvl = level.AllowDebug()
	case "info":
		lvl = level.AllowInfo()
	case "warn":
		lvl = level.AllowWarn()
	case "error":
		lvl = level.AllowError()
	default:
		return errUnknownLevel(name)
	}
	Logger = level.NewFilter(Logger, lvl)
	return nil
}

type errUnknownLevel string

func (e errUnknownLevel) Error() string {
	return "log: unknown level " + string(e)
}
