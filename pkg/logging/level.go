package logging

// Level controls how much diagnostic output the deltasync CLI emits. Its
// value hierarchy is ordered and comparable: raising the level enables
// everything a lower level enables plus more.
type Level uint

const (
	// LevelDisabled suppresses all output from a Logger, including warnings
	// and errors. It's intended for scripted invocations that parse
	// standard output/error themselves and want no incidental noise.
	LevelDisabled Level = iota
	// LevelInfo is the default level: it logs warnings, errors, and
	// invocation-level progress (e.g. "signing <path> with block size ...").
	LevelInfo
	// LevelDebug additionally enables the Debug, Debugf and Debugln family
	// of Logger methods. The sign/diff/patch engine itself does not log.
	LevelDebug
)

// NameToLevel converts the string accepted by --log-level into a Level. It
// returns false for anything else, in which case LevelInfo is returned as a
// safe fallback.
func NameToLevel(name string) (Level, bool) {
	switch name {
	case "disabled":
		return LevelDisabled, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	default:
		return LevelInfo, false
	}
}

// String provides a human-readable representation of a log level, matching
// the vocabulary accepted by NameToLevel.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}
