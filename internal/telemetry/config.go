package telemetry

import (
	"os"
)

const defaultEventsDir = ".genie"

var observeEnabled bool

func init() {
	// Read once at process start. Mid-run environment changes have no effect
	// except the explicit test override in ObserveEnabled.
	observeEnabled = os.Getenv("GENIE_OBSERVE_JSON") == "1"
}

// ObserveEnabled reports whether JSONL emission is on.
func ObserveEnabled() bool {
	// Allow tests to enable mid-run via env override.
	if os.Getenv("GENIE_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}

// EventsDir is the directory holding events.jsonl; GENIE_EVENTS_DIR overrides the default.
func EventsDir() string {
	if d := os.Getenv("GENIE_EVENTS_DIR"); d != "" {
		return d
	}
	return defaultEventsDir
}
