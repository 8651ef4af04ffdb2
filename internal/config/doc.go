// Package config provides user configuration management for civctl.
//
// This package manages a YAML-based configuration file that stores the
// serial port, CI-V bus addresses and session tuning parameters. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/civctl/config.yaml or $HOME/.config/civctl/config.yaml
//   - macOS: $HOME/.config/civctl/config.yaml
//   - Windows: %LOCALAPPDATA%\civctl\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Port = "/dev/ttyACM0"
//	settings.Baud = 19200
//
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// A Baud of 0 means "detect automatically". An empty Port means "scan
// for the radio by USB product string".
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
