package cidrtrie

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// logger is the package-scope logger the engine writes to. It defaults to
// logrus's standard logger so the package is usable with no setup, and is
// overridable via SetLogger for host applications that want engine logs
// routed into their own logger instance, mirroring CIDARTHA's module-level
// logger ("logger = logging.getLogger('CIDARTHA')"). The type is
// logrus.Ext1FieldLogger rather than logrus.FieldLogger because the
// concurrency envelope logs lock acquisition at Trace, and Trace/Tracef/
// Traceln live only on the extended interface.
var (
	loggerMu sync.RWMutex
	logger   logrus.Ext1FieldLogger = logrus.StandardLogger()
)

// SetLogger replaces the logger the engine writes to. Safe for concurrent
// use; intended to be called once at startup.
func SetLogger(l logrus.Ext1FieldLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func log() logrus.Ext1FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
