// Package rflog is a thin structured-logging wrapper around logrus, scoped
// down from the teacher's full logger subsystem to the handful of fields
// this tool's connection and client code actually emits: remote.host,
// remote.port, conn.id, pool.key, and redpath. Call sites follow the same
// entry-builder shape as httpcli/http.go's
// liblog.GetDefault().Entry(...).FieldAdd(...).Log() pattern, but built
// directly on github.com/sirupsen/logrus instead of porting the rest of
// that subsystem (see DESIGN.md).
package rflog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetLevel adjusts the base logger's verbosity. Called once at startup from
// the CLI's --verbose flag.
func SetLevel(lvl logrus.Level) {
	base.SetLevel(lvl)
}

// Entry starts a structured log entry. WithField calls chain off the
// returned *logrus.Entry where the teacher's liblog usage chains FieldAdd.
func Entry() *logrus.Entry {
	return logrus.NewEntry(base)
}

// WithRemote adds the remote.host / remote.port fields used by every
// connection and client log line.
func WithRemote(host, port string) *logrus.Entry {
	return Entry().WithField("remote.host", host).WithField("remote.port", port)
}

// WithConn adds the conn.id / pool.key fields used by connection-pool log
// lines; connID is the per-connection correlation id (see rfconn.Connection.ID).
func WithConn(connID, poolKey string) *logrus.Entry {
	return Entry().WithField("conn.id", connID).WithField("pool.key", poolKey)
}

// WithRedpath adds the redpath field used when a matched property is
// surfaced to the user.
func WithRedpath(path string) *logrus.Entry {
	return Entry().WithField("redpath", path)
}
