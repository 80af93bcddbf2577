package config

import (
	"encoding/hex"
	"fmt"
	"time"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents persisted metadata for a single dive computer,
// keyed by its serial number in the Registry.
type Device struct {
	Nickname    string    `yaml:"nickname,omitempty"`    // User-friendly name
	Model       int       `yaml:"model,omitempty"`       // Device model number
	LastAddress string    `yaml:"last_address,omitempty"` // Last known bridge address
	LastSeen    time.Time `yaml:"last_seen,omitempty"`   // Last successful download
	Fingerprint string    `yaml:"fingerprint,omitempty"` // Newest downloaded dive, hex
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ScanTimeout int    `yaml:"scan_timeout"`        // mDNS discovery timeout in seconds
	Transport   string `yaml:"transport,omitempty"` // Default transport kind ("tcp" or "ws")
	IOTimeout   int    `yaml:"io_timeout,omitempty"` // Per-operation transport timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			ScanTimeout: 10,
			Transport:   "tcp",
		},
	}
}

// GetDevice retrieves device metadata by serial number.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(serial string) *Device {
	return r.Devices[serial]
}

// EnsureDevice ensures a device entry exists in the registry and returns
// it, creating a default entry if needed.
func (r *Registry) EnsureDevice(serial string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[serial]; exists {
		return device
	}

	device := &Device{}
	r.Devices[serial] = device
	return device
}

// RecordDownload updates a device entry after a successful download:
// bridge address, timestamp, and the fingerprint of the newest dive.
func (r *Registry) RecordDownload(serial, address string, fingerprint []byte) {
	device := r.EnsureDevice(serial)
	device.LastAddress = address
	device.LastSeen = time.Now()
	if len(fingerprint) > 0 {
		device.Fingerprint = hex.EncodeToString(fingerprint)
	}
}

// FingerprintBytes decodes the stored fingerprint. Returns nil when no
// fingerprint is stored.
func (d *Device) FingerprintBytes() ([]byte, error) {
	if d == nil || d.Fingerprint == "" {
		return nil, nil
	}
	data, err := hex.DecodeString(d.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("malformed stored fingerprint %q: %w", d.Fingerprint, err)
	}
	return data, nil
}
