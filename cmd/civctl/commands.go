package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kc3vo/civctl/internal/bridge"
	"github.com/kc3vo/civctl/internal/config"
	"github.com/kc3vo/civctl/internal/poller"
	"github.com/kc3vo/civctl/internal/protocol"
	"github.com/kc3vo/civctl/internal/radio"
	"github.com/kc3vo/civctl/internal/transport"
	"github.com/kc3vo/civctl/internal/ui"
)

// Connection flags
var (
	portFlag    string
	baudFlag    int
	timeoutFlag int
)

func init() {
	// Common flags for all radio commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "Serial port or ws:// bridge URL (overrides config, skips port scan)")
	rootCmd.PersistentFlags().IntVar(&baudFlag, "baud", 0, "Serial bit rate (overrides config, 0 = auto-detect)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Command timeout in milliseconds (overrides config)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(gpsCmd)
	rootCmd.AddCommand(bridgeCmd)
}

// loadSettings merges persisted configuration with command-line
// overrides.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if portFlag != "" {
		settings.Port = portFlag
	}
	if baudFlag != 0 {
		settings.Baud = baudFlag
	}
	if timeoutFlag != 0 {
		settings.TimeoutMs = timeoutFlag
	}
	return settings, nil
}

// connect opens a session from settings. On failure it prints the
// radio-side checklist, since most connection failures are menu
// settings on the radio rather than anything on this end.
func connect() (*radio.Radio, *config.Settings, int, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, 0, err
	}

	r, baud, err := radio.AutoConnect(settings)
	if err != nil {
		printTroubleshooting(settings)
		return nil, nil, 0, fmt.Errorf("failed to connect to radio: %w", err)
	}
	return r, settings, baud, nil
}

func printTroubleshooting(settings *config.Settings) {
	fmt.Fprintln(os.Stderr, "Troubleshooting:")
	fmt.Fprintf(os.Stderr, "  1. Connect the %s via USB-C\n", settings.Product)
	fmt.Fprintln(os.Stderr, "  2. Ensure the following settings on the radio:")
	fmt.Fprintln(os.Stderr, "     Menu > Set > Function")
	fmt.Fprintf(os.Stderr, "         CI-V > CI-V Address = %02X\n", settings.RadioAddr)
	fmt.Fprintln(os.Stderr, "         CI-V > CI-V Baud Rate (SP Jack) = Auto")
	fmt.Fprintln(os.Stderr, "         CI-V > CI-V Transceive = ON")
	fmt.Fprintln(os.Stderr, "         CI-V > CI-V USB/Bluetooth->Remote Transceive Address = 00")
	fmt.Fprintln(os.Stderr, "         USB Connect = Serialport")
	fmt.Fprintln(os.Stderr, "         USB Serialport Function = CI-V (Echo Back ON)")
	fmt.Fprintln(os.Stderr, "  3. Ensure the ICOM USB driver is installed")
}

// statusCmd prints a one-shot report of the radio's current state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the radio's current state",
	Long: `Connect to the radio and print a one-shot report of the active
VFO's frequency, mode, tone settings, and the current meter levels.`,
	Example: `  # Status with auto-detected port and bit rate
  civctl status

  # Status over a specific port
  civctl status --port /dev/ttyACM0 --baud 19200`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	r, _, _, err := connect()
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Println(ui.ConnectedStyle.Render("Connected"))
	fmt.Println()

	printField := func(label string, read func() (string, error)) {
		value, err := read()
		if err != nil {
			value = ui.ErrorStyle.Render(fmt.Sprintf("read failed: %v", err))
		}
		fmt.Printf("%s %s\n", ui.LabelStyle.Render(fmt.Sprintf("%-11s", label+":")), value)
	}

	printField("Frequency", func() (string, error) {
		f, err := r.ReadFrequency()
		if err != nil {
			return "", err
		}
		return ui.ValueStyle.Render(ui.FormatFrequency(f.Hz()) + " MHz"), nil
	})
	printField("Mode", func() (string, error) {
		m, err := r.ReadMode()
		if err != nil {
			return "", err
		}
		return ui.ValueStyle.Render(m.String()), nil
	})
	printField("Tone", func() (string, error) {
		m, err := r.ReadToneMode()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Tx %s / Rx %s", m.TxType(), m.RxType()), nil
	})

	fmt.Println()
	printMeter := func(label string, read func() (uint16, error)) {
		v, err := read()
		if err != nil {
			fmt.Println(ui.Meter(label, nil, 255))
			return
		}
		fmt.Println(ui.Meter(label, &v, 255))
	}
	printMeter("S", func() (uint16, error) { return r.ReadMeter(protocol.MeterS) })
	printMeter("Vol", func() (uint16, error) { return r.ReadLevel(protocol.LevelAF) })
	printMeter("SQL", func() (uint16, error) { return r.ReadLevel(protocol.LevelSquelch) })

	return nil
}

// watchCmd continuously polls and prints state snapshots
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously watch the radio's state",
	Long: `Connect to the radio and poll its state on a fixed interval,
printing a report for each snapshot until interrupted.

The poll interval is taken from the configuration file
(poll_interval_ms).`,
	Example: `  # Watch with default settings
  civctl watch

  # Watch over a WebSocket serial bridge
  civctl watch --port ws://bridge.local:8080/serial`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	r, settings, baud, err := connect()
	if err != nil {
		return err
	}
	defer r.Close()

	interval := time.Duration(settings.PollIntervalMs) * time.Millisecond
	cmds := make(chan poller.Command, 8)
	events := make(chan poller.Event, 64)
	done := make(chan struct{})

	p := poller.New(r, interval)
	go func() {
		defer close(done)
		p.Run(cmds, events)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		select {
		case <-interrupt:
			cmds <- poller.Quit{}
		case ev := <-events:
			switch e := ev.(type) {
			case poller.Connected:
				fmt.Println(ui.ConnectedStyle.Render("Connected"))
			case poller.Disconnected:
				fmt.Println("Disconnected")
				<-done
				return nil
			case poller.StateUpdate:
				fmt.Println(ui.StatusReport(e.State, baud))
				fmt.Println()
			case poller.ErrorEvent:
				fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", e.Err)))
			}
		}
	}
}

// setCmd groups the one-shot setters
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a radio parameter",
	Long: `One-shot setters for frequency, mode, levels, VFO selection,
tone squelch, and repeater settings.`,
}

func init() {
	setCmd.AddCommand(setFreqCmd)
	setCmd.AddCommand(setModeCmd)
	setCmd.AddCommand(setLevelCmd)
	setCmd.AddCommand(setVfoCmd)
	setCmd.AddCommand(setDuplexCmd)
	setCmd.AddCommand(setOffsetCmd)
	setCmd.AddCommand(setToneCmd)
	setCmd.AddCommand(setDTCSCmd)
}

var setFreqCmd = &cobra.Command{
	Use:   "freq <MHz>",
	Short: "Tune the active VFO",
	Example: `  civctl set freq 145.500
  civctl set freq 438.100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mhz, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid frequency %q: %w", args[0], err)
		}
		freq, err := protocol.FrequencyFromMHz(mhz)
		if err != nil {
			return err
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetFrequency(freq); err != nil {
			return fmt.Errorf("failed to set frequency: %w", err)
		}
		fmt.Printf("Frequency set to %s MHz\n", ui.FormatFrequency(freq.Hz()))
		return nil
	},
}

var setModeCmd = &cobra.Command{
	Use:     "mode <FM|FM-N|AM|AM-N|DV>",
	Short:   "Set the operating mode",
	Example: `  civctl set mode FM-N`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := protocol.ModeFromString(args[0])
		if err != nil {
			return err
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetMode(mode); err != nil {
			return fmt.Errorf("failed to set mode: %w", err)
		}
		fmt.Printf("Mode set to %s\n", mode)
		return nil
	},
}

var setLevelCmd = &cobra.Command{
	Use:   "level <af|squelch|power> <0-255>",
	Short: "Set a level (AF volume, squelch, RF power)",
	Example: `  civctl set level af 120
  civctl set level squelch 30
  civctl set level power 255`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var sub byte
		switch strings.ToLower(args[0]) {
		case "af":
			sub = protocol.LevelAF
		case "squelch", "sql":
			sub = protocol.LevelSquelch
		case "power", "rf":
			sub = protocol.LevelRFPower
		default:
			return fmt.Errorf("unknown level %q (expected af, squelch, or power)", args[0])
		}

		value, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil || value > 255 {
			return fmt.Errorf("invalid level value %q (expected 0-255)", args[1])
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetLevel(sub, uint16(value)); err != nil {
			return fmt.Errorf("failed to set level: %w", err)
		}
		fmt.Printf("Level %s set to %d\n", args[0], value)
		return nil
	},
}

var setVfoCmd = &cobra.Command{
	Use:     "vfo <a|b>",
	Short:   "Select the active VFO",
	Example: `  civctl set vfo b`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var selectVfo func(*radio.Radio) error
		switch strings.ToLower(args[0]) {
		case "a":
			selectVfo = (*radio.Radio).SelectVFOA
		case "b":
			selectVfo = (*radio.Radio).SelectVFOB
		default:
			return fmt.Errorf("unknown VFO %q (expected a or b)", args[0])
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := selectVfo(r); err != nil {
			return fmt.Errorf("failed to select VFO: %w", err)
		}
		fmt.Printf("VFO %s selected\n", strings.ToUpper(args[0]))
		return nil
	},
}

var setDuplexCmd = &cobra.Command{
	Use:     "duplex <simplex|minus|plus>",
	Short:   "Set the repeater shift direction",
	Example: `  civctl set duplex minus`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var direction byte
		switch strings.ToLower(args[0]) {
		case "simplex", "off":
			direction = protocol.DuplexSimplex
		case "minus", "-":
			direction = protocol.DuplexMinus
		case "plus", "+":
			direction = protocol.DuplexPlus
		default:
			return fmt.Errorf("unknown duplex direction %q (expected simplex, minus, or plus)", args[0])
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetDuplex(direction); err != nil {
			return fmt.Errorf("failed to set duplex: %w", err)
		}
		fmt.Printf("Duplex set to %s\n", args[0])
		return nil
	},
}

var setOffsetCmd = &cobra.Command{
	Use:   "offset <MHz>",
	Short: "Set the repeater offset",
	Example: `  # Standard 2m offset
  civctl set offset 0.6

  # Standard 70cm offset
  civctl set offset 5.0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mhz, err := strconv.ParseFloat(args[0], 64)
		if err != nil || mhz < 0 {
			return fmt.Errorf("invalid offset %q: expected MHz value", args[0])
		}
		// Round rather than truncate: 0.6 MHz is not exact in float64
		// and truncation would encode 599.9 kHz.
		hz := uint64(math.Round(mhz * 1_000_000))

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetOffset(hz); err != nil {
			return fmt.Errorf("failed to set offset: %w", err)
		}
		fmt.Printf("Offset set to %.3f MHz\n", mhz)
		return nil
	},
}

var setToneCmd = &cobra.Command{
	Use:   "tone <tx|rx> <Hz>",
	Short: "Set a CTCSS tone frequency",
	Example: `  # 88.5 Hz repeater tone
  civctl set tone tx 88.5

  # 141.3 Hz tone squelch
  civctl set tone rx 141.3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hz, err := strconv.ParseFloat(args[1], 64)
		if err != nil || hz <= 0 {
			return fmt.Errorf("invalid tone frequency %q", args[1])
		}
		tenths := uint16(hz*10 + 0.5)

		var setTone func(*radio.Radio, uint16) error
		switch strings.ToLower(args[0]) {
		case "tx":
			setTone = (*radio.Radio).SetTxTone
		case "rx":
			setTone = (*radio.Radio).SetRxTone
		default:
			return fmt.Errorf("unknown tone direction %q (expected tx or rx)", args[0])
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := setTone(r, tenths); err != nil {
			return fmt.Errorf("failed to set tone: %w", err)
		}
		fmt.Printf("Tone %s set to %.1f Hz\n", args[0], float64(tenths)/10)
		return nil
	},
}

var setDTCSCmd = &cobra.Command{
	Use:   "dtcs <code> [tx-polarity] [rx-polarity]",
	Short: "Set the DTCS code and polarity",
	Long: `Set the DTCS code (three digits) and optionally the transmit and
receive polarity (normal or reverse, default normal).`,
	Example: `  civctl set dtcs 023
  civctl set dtcs 754 reverse normal`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil || code > 999 {
			return fmt.Errorf("invalid DTCS code %q (expected 000-999)", args[0])
		}

		parsePolarity := func(s string) (byte, error) {
			switch strings.ToLower(s) {
			case "normal", "n":
				return 0, nil
			case "reverse", "r":
				return 1, nil
			default:
				return 0, fmt.Errorf("unknown polarity %q (expected normal or reverse)", s)
			}
		}

		var txPol, rxPol byte
		if len(args) >= 2 {
			if txPol, err = parsePolarity(args[1]); err != nil {
				return err
			}
		}
		if len(args) >= 3 {
			if rxPol, err = parsePolarity(args[2]); err != nil {
				return err
			}
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := r.SetDTCS(txPol, rxPol, uint16(code)); err != nil {
			return fmt.Errorf("failed to set DTCS: %w", err)
		}
		fmt.Printf("DTCS set to %03d\n", code)
		return nil
	},
}

var bridgeListenAddr string

func init() {
	bridgeCmd.Flags().StringVar(&bridgeListenAddr, "listen", ":8473", "Address to serve the bridge on")
}

// bridgeCmd serves the local serial port over WebSocket
var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve the local serial port over WebSocket",
	Long: `Serve the radio's serial port over a WebSocket so a remote civctl
can connect with --port ws://<host>:<port>/serial.

The bridge forwards raw bytes in both directions and serves one
client at a time. Automatic bit-rate detection does not run here; set
baud in the configuration or with --baud (default 19200).`,
	Example: `  # Serve the auto-detected port
  civctl bridge --listen :8473

  # From another machine
  civctl status --port ws://shack.local:8473/serial`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		portName := settings.Port
		if portName == "" {
			portName, err = radio.FindPort(settings.Product)
			if err != nil {
				printTroubleshooting(settings)
				return fmt.Errorf("failed to find radio port: %w", err)
			}
		}

		baud := settings.Baud
		if baud == 0 {
			baud = radio.CandidateBauds[0]
		}

		port, err := transport.OpenSerial(portName, baud)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", portName, err)
		}
		defer port.Close()

		fmt.Printf("Bridging %s at %d baud on ws://%s/serial\n", portName, baud, bridgeListenAddr)
		return bridge.New(port).ListenAndServe(bridgeListenAddr)
	},
}

// powerCmd turns the radio on or off
var powerCmd = &cobra.Command{
	Use:     "power <on|off>",
	Short:   "Power the radio on or off",
	Example: `  civctl power off`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var action func(*radio.Radio) error
		switch strings.ToLower(args[0]) {
		case "on":
			action = (*radio.Radio).PowerOn
		case "off":
			action = (*radio.Radio).PowerOff
		default:
			return fmt.Errorf("unknown power state %q (expected on or off)", args[0])
		}

		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		if err := action(r); err != nil {
			return fmt.Errorf("power command failed: %w", err)
		}
		fmt.Printf("Radio powered %s\n", strings.ToLower(args[0]))
		return nil
	},
}

// gpsCmd reads the radio's GPS fix
var gpsCmd = &cobra.Command{
	Use:     "gps",
	Short:   "Read the radio's GPS position",
	Example: `  civctl gps`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, _, err := connect()
		if err != nil {
			return err
		}
		defer r.Close()

		pos, err := r.ReadGPSPosition()
		if err != nil {
			return fmt.Errorf("failed to read GPS position: %w", err)
		}

		fmt.Printf("%s %11.6f\n", ui.LabelStyle.Render("Latitude: "), pos.Latitude)
		fmt.Printf("%s %11.6f\n", ui.LabelStyle.Render("Longitude:"), pos.Longitude)
		fmt.Printf("%s %.1f m\n", ui.LabelStyle.Render("Altitude: "), pos.Altitude)
		fmt.Printf("%s %.1f km/h at %d deg\n", ui.LabelStyle.Render("Speed:    "), pos.Speed, pos.Course)
		fmt.Printf("%s %04d-%02d-%02d %02d:%02d:%02d\n", ui.LabelStyle.Render("UTC:      "),
			pos.UTCYear, pos.UTCMonth, pos.UTCDay, pos.UTCHour, pos.UTCMinute, pos.UTCSecond)
		return nil
	},
}
