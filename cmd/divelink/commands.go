package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/divelog/divelink/internal/buffer"
	"github.com/divelog/divelink/internal/config"
	"github.com/divelog/divelink/internal/device"
	"github.com/divelog/divelink/internal/discovery"
	"github.com/divelog/divelink/internal/dive"
	"github.com/divelog/divelink/internal/transport"
	"github.com/divelog/divelink/internal/ui"
)

// Command flags
var (
	bridgeAddress string
	transportKind string
	ioTimeout     int
	scanTimeout   int
	dumpOutput    string
	fetchAll      bool
	withSamples   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&bridgeAddress, "address", "", "Bridge address (host:port or ws:// URL, skips discovery)")
	rootCmd.PersistentFlags().StringVar(&transportKind, "transport", "", "Transport kind (tcp, ws; default from config)")
	rootCmd.PersistentFlags().IntVar(&ioTimeout, "timeout", 0, "Transport timeout in seconds (0 = default)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(divesCmd)
	rootCmd.AddCommand(samplesCmd)
}

// scanCmd discovers bridges on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for dive computers on the network",
	Long: `Scan for serial bridges with a dive computer in IrDA range, using
mDNS/DNS-SD discovery. Only bridges reporting a recognized device name
(Uwatec, Aladin, Smart, Galileo) are listed.`,
	Example: `  # Scan for 10 seconds (default)
  divelink scan

  # Quick 3-second scan
  divelink scan --scan-timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for dive computers (timeout: %ds)...\n\n", scanTimeout)

	bridges, err := discovery.Scan(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(bridges) == 0 {
		fmt.Println("No dive computers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Wake the dive computer and enable IR data transfer")
		fmt.Println("  - Place it within range of the bridge's IR window")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --address to specify the bridge manually")
		return nil
	}

	fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("Found %d dive computer(s):", len(bridges))))
	fmt.Println()

	for i, bridge := range bridges {
		fmt.Printf("%d. %s\n", i+1, bridge.Name)
		fmt.Printf("   %s %s\n", ui.LabelStyle.Render("Bridge: "), bridge.Hostname)
		fmt.Printf("   %s %s\n", ui.LabelStyle.Render("Address:"), bridge.Address())
		fmt.Println()
	}

	fmt.Println("Use 'divelink dives --address <host:port>' to download dives")

	return nil
}

// infoCmd identifies the connected device
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show dive computer identity",
	Long: `Connect to a dive computer and read its model number, serial number
and device clock.`,
	Example: `  # With discovery
  divelink info

  # Direct bridge address
  divelink info --address 192.168.4.16:2000`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	info, devtime, err := session.Version()
	if err != nil {
		return fmt.Errorf("failed to identify device: %w", err)
	}

	fmt.Println(ui.TitleStyle.Render("Dive computer"))
	fmt.Printf("  %s 0x%02X\n", ui.LabelStyle.Render("Model: "), info.Model)
	fmt.Printf("  %s %d\n", ui.LabelStyle.Render("Serial:"), info.Serial)
	fmt.Printf("  %s %d s since device epoch\n", ui.LabelStyle.Render("Clock: "), devtime)
	if !session.HandshakeOK() {
		fmt.Println(ui.WarnStyle.Render("  Handshake refused; device identified anyway"))
	}

	return nil
}

// dumpCmd downloads the raw memory image
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Download the raw memory image to a file",
	Long: `Download the device memory and write it to a file, unparsed.

With a stored fingerprint for the device, only memory for new dives is
transferred; --all forces a full download.`,
	Example: `  # Incremental dump to dump.bin
  divelink dump

  # Full dump to a chosen file
  divelink dump --all --output galileo.bin`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpOutput, "output", "dump.bin", "Output file")
	dumpCmd.Flags().BoolVar(&fetchAll, "all", false, "Ignore the stored fingerprint and fetch everything")
	divesCmd.Flags().BoolVar(&withSamples, "samples", false, "Print the decoded samples of every dive")
	divesCmd.Flags().BoolVar(&fetchAll, "all", false, "Ignore the stored fingerprint and fetch everything")
}

func runDump(cmd *cobra.Command, args []string) error {
	session, address, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	buf := &buffer.Buffer{}
	serial, err := download(session, address, buf)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dumpOutput, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}

	fmt.Println(ui.SuccessStyle.Render(
		fmt.Sprintf("Wrote %d bytes from device %d to %s", buf.Len(), serial, dumpOutput)))

	return nil
}

// divesCmd downloads and decodes dives
var divesCmd = &cobra.Command{
	Use:   "dives",
	Short: "Download and decode dives",
	Long: `Download the device memory, split it into dives, and decode each
dive's profile. Dives are listed newest first. The fingerprint of the
newest dive is stored, so the next run only downloads newer dives.`,
	Example: `  # List new dives
  divelink dives

  # Everything, with full sample listings
  divelink dives --all --samples`,
	RunE: runDives,
}

func runDives(cmd *cobra.Command, args []string) error {
	session, address, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	buf := &buffer.Buffer{}
	serial, err := download(session, address, buf)
	if err != nil {
		return err
	}

	if buf.Len() == 0 {
		fmt.Println("No new dives.")
		return nil
	}

	parser := dive.NewParser()
	count := 0
	err = dive.Extract(buf.Bytes(), func(r dive.Record) bool {
		count++
		printDive(parser, count, r)
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to split dump: %w", err)
	}

	fmt.Printf("\n%d dive(s), %d bytes from device %d\n", count, buf.Len(), serial)

	return nil
}

// samplesCmd decodes a previously saved dump file, no device needed
var samplesCmd = &cobra.Command{
	Use:   "samples <file>",
	Short: "Decode dives from a saved dump file",
	Long: `Split a memory dump previously saved with 'dump' into dives and decode
every dive's profile, including the full sample listing. Works entirely
offline; no device or bridge is contacted.`,
	Example: `  divelink dump --output galileo.bin
  divelink samples galileo.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runSamples,
}

func runSamples(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read dump: %w", err)
	}

	withSamples = true

	parser := dive.NewParser()
	count := 0
	err = dive.Extract(data, func(r dive.Record) bool {
		count++
		printDive(parser, count, r)
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to split dump: %w", err)
	}

	fmt.Printf("\n%d dive(s) in %s (%d bytes)\n", count, args[0], len(data))

	return nil
}

func printDive(parser *dive.Parser, number int, r dive.Record) {
	parser.SetData(r.Data)

	fmt.Printf("%s\n", ui.TitleStyle.Render(fmt.Sprintf("Dive %d", number)))
	fmt.Printf("  %s %s\n", ui.LabelStyle.Render("Fingerprint:"), hex.EncodeToString(r.Fingerprint))

	if divetime, err := parser.Divetime(); err == nil {
		fmt.Printf("  %s %s\n", ui.LabelStyle.Render("Dive time:  "),
			time.Duration(divetime)*time.Second)
	} else {
		fmt.Printf("  %s %v\n", ui.WarnStyle.Render("Profile error:"), err)
		return
	}
	if maxdepth, err := parser.MaxDepth(); err == nil {
		fmt.Printf("  %s %.1f m\n", ui.LabelStyle.Render("Max depth:  "), maxdepth)
	}

	if !withSamples {
		return
	}

	err := parser.ForeachSample(func(s dive.Sample) bool {
		fmt.Printf("    %s\n", s)
		return true
	})
	if err != nil {
		fmt.Printf("  %s %v\n", ui.WarnStyle.Render("Profile error:"), err)
	}
}

// openSession dials the bridge (directly or via discovery) and opens a
// device session over it. Returns the bridge address for bookkeeping.
// Flags win over stored preferences, preferences over built-in defaults.
func openSession() (*device.Session, string, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, "", err
	}
	prefs := registry.Preferences

	address := bridgeAddress
	if address == "" {
		fmt.Println("Discovering dive computer...")
		scanner := discovery.NewScanner()
		if prefs != nil && prefs.ScanTimeout > 0 {
			scanner.Timeout = time.Duration(prefs.ScanTimeout) * time.Second
		}
		bridge, err := scanner.WaitForDiveComputer(context.Background())
		if err != nil {
			return nil, "", fmt.Errorf("discovery failed: %w (use --address to skip discovery)", err)
		}
		fmt.Printf("Using %s\n", bridge)
		address = bridge.Address()
	}

	seconds := ioTimeout
	if seconds == 0 && prefs != nil {
		seconds = prefs.IOTimeout
	}
	timeout := time.Duration(seconds) * time.Second

	kind := transportKind
	if kind == "" && prefs != nil {
		kind = prefs.Transport
	}
	if kind == "" {
		kind = "tcp"
	}

	var t transport.Transport
	switch kind {
	case "ws":
		url := address
		if len(url) < 5 || url[:5] != "ws://" {
			url = "ws://" + address
		}
		t, err = transport.DialWebSocket(url, timeout)
	case "tcp":
		t, err = transport.DialTCP(address, timeout)
	default:
		return nil, "", fmt.Errorf("unknown transport %q (want tcp or ws)", kind)
	}
	if err != nil {
		return nil, "", err
	}

	session, err := device.Open(t)
	if err != nil {
		return nil, "", err
	}
	if !session.HandshakeOK() {
		fmt.Println(ui.WarnStyle.Render("Warning: device refused the handshake, continuing"))
	}

	return session, address, nil
}

// download runs a dump with a progress meter and fingerprint bookkeeping.
// Returns the device serial for reporting.
func download(session *device.Session, address string, buf *buffer.Buffer) (uint32, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return 0, err
	}

	// The serial is needed up front to look up the stored fingerprint.
	info, _, err := session.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to identify device: %w", err)
	}
	serialKey := fmt.Sprintf("%d", info.Serial)

	if !fetchAll {
		stored, err := registry.GetDevice(serialKey).FingerprintBytes()
		if err != nil {
			return 0, err
		}
		if err := session.SetFingerprint(stored); err != nil {
			return 0, err
		}
	}

	meter := ui.StartDumpProgress("Downloading")
	session.SetEvents(device.Events{
		Progress: func(p device.Progress) { meter.Update(p.Current, p.Maximum) },
	})

	err = session.Dump(buf)
	meter.Finish()
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}

	// Remember the newest dive so the next download is incremental. The
	// first record of the backward scan is the newest.
	var newest []byte
	_ = dive.Extract(buf.Bytes(), func(r dive.Record) bool {
		newest = append([]byte{}, r.Fingerprint...)
		return false
	})
	if newest != nil || buf.Len() > 0 {
		registry.RecordDownload(serialKey, address, newest)
		if err := registry.Save(); err != nil {
			return 0, fmt.Errorf("failed to save registry: %w", err)
		}
	}

	return info.Serial, nil
}
