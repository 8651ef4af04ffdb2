package config

// Settings represents the entire civctl configuration file.
type Settings struct {
	Version int `yaml:"version"`

	// Port is the serial device path. Empty means scan by product string.
	Port string `yaml:"port,omitempty"`

	// Baud is the serial bit rate. 0 means detect automatically.
	Baud int `yaml:"baud,omitempty"`

	// Product is the USB product string to scan for when Port is empty.
	Product string `yaml:"product,omitempty"`

	// RadioAddr and ControllerAddr are the CI-V bus addresses. The
	// defaults cover the ID-52 with a factory controller address.
	RadioAddr      uint8 `yaml:"radio_address"`
	ControllerAddr uint8 `yaml:"controller_address"`

	// TimeoutMs bounds each command/response exchange.
	TimeoutMs int `yaml:"timeout_ms"`

	// EchoBack tells the session whether the radio's CI-V echo back
	// setting is on, so transmitted frames come back on the wire.
	EchoBack bool `yaml:"echo_back"`

	// PollIntervalMs is the idle delay between poller iterations.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// VFOASub and VFOBSub are the band selector values for the VFO
	// command. The ID-52 family uses 0xD0/0xD1; HF rigs use 0x00/0x01.
	VFOASub uint8 `yaml:"vfo_a_sub"`
	VFOBSub uint8 `yaml:"vfo_b_sub"`
}

// NewSettings creates Settings with default values for an ID-52.
func NewSettings() *Settings {
	return &Settings{
		Version:        1,
		Product:        "ID-52PLUS",
		RadioAddr:      0xB4,
		ControllerAddr: 0xE0,
		TimeoutMs:      1000,
		EchoBack:       true,
		PollIntervalMs: 200,
		VFOASub:        0xD0,
		VFOBSub:        0xD1,
	}
}
