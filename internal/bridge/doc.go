// Package bridge serves a local serial port over a WebSocket so a
// remote civctl can control the radio across the network.
//
// The bridge is a transparent byte pump: CI-V frames are not parsed
// or validated here, every byte on the serial side is forwarded as
// binary WebSocket messages and vice versa. One client is served at a
// time; the radio session protocol assumes a single controller.
package bridge
