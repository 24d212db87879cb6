// Package telemetry writes opt-in JSONL run events.
//
// Enable with GENIE_OBSERVE_JSON=1. Events go to .genie/events.jsonl, or to
// events.jsonl under GENIE_EVENTS_DIR when set. Each line carries time, event
// and, for run-scoped events, run_id.
package telemetry
