// Package ui renders civctl's human-readable terminal output.
//
// It formats radio state snapshots (frequency, mode, tone settings,
// meters, link throughput) into styled lines for the status and watch
// commands. All functions are pure renderers over snapshot values;
// nothing here talks to the radio.
package ui
