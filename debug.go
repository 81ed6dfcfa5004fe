package spinview

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// debugStats holds per-frame projection metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	projectTime time.Duration
	sortTime    time.Duration
	entries     int
	triangles   int
}

// debugLogEvery throttles per-frame stats to one line per second at 60 Hz.
const debugLogEvery = 60

// SetLogger replaces the scene logger. A nil logger restores the null logger.
func (s *Scene) SetLogger(logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s.logger = logger
}

// Logger returns the scene logger.
func (s *Scene) Logger() hclog.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, missing spin targets are reported as assertion failures, and
// projection stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// debugLog writes projection stats every debugLogEvery frames.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	s.logger.Debug("frame",
		"tick", s.frame,
		"entries", stats.entries,
		"triangles", stats.triangles,
		"project", stats.projectTime,
		"sort", stats.sortTime,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("spinview debug: %s on disposed node %q", op, n.Name))
	}
}
