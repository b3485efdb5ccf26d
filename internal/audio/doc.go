// Package audio reads stream volume levels from the host audio service.
// A Reader asks an Oracle for the current and maximum level of a stream on
// every call and reports the level as a fraction in [0.0, 1.0]. A Poller
// repeats that query on an interval and reports changes.
package audio
