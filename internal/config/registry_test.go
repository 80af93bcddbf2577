package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "divelink") {
		t.Errorf("GetConfigDir() = %v, should contain 'divelink'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}
	if reg.Preferences.ScanTimeout != 10 {
		t.Errorf("default scan timeout = %d, want 10", reg.Preferences.ScanTimeout)
	}
}

func TestRegistry_EnsureDevice(t *testing.T) {
	reg := NewRegistry()

	device := reg.EnsureDevice("12345678")
	if device == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	// Second call returns the same entry.
	device.Nickname = "Galileo"
	again := reg.EnsureDevice("12345678")
	if again.Nickname != "Galileo" {
		t.Errorf("EnsureDevice() created a new entry, nickname = %q", again.Nickname)
	}
}

func TestRegistry_RecordDownload(t *testing.T) {
	reg := NewRegistry()

	reg.RecordDownload("12345678", "192.168.4.16:2000", []byte{0x78, 0x56, 0x34, 0x12})

	device := reg.GetDevice("12345678")
	if device == nil {
		t.Fatal("device not recorded")
	}
	if device.LastAddress != "192.168.4.16:2000" {
		t.Errorf("LastAddress = %q", device.LastAddress)
	}
	if device.Fingerprint != "78563412" {
		t.Errorf("Fingerprint = %q, want 78563412", device.Fingerprint)
	}
	if device.LastSeen.IsZero() {
		t.Error("LastSeen not set")
	}
}

func TestDevice_FingerprintBytes(t *testing.T) {
	tests := []struct {
		name    string
		device  *Device
		want    []byte
		wantErr bool
	}{
		{
			name:   "nil device",
			device: nil,
			want:   nil,
		},
		{
			name:   "no fingerprint stored",
			device: &Device{},
			want:   nil,
		},
		{
			name:   "valid fingerprint",
			device: &Device{Fingerprint: "78563412"},
			want:   []byte{0x78, 0x56, 0x34, 0x12},
		},
		{
			name:    "malformed hex",
			device:  &Device{Fingerprint: "zz"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.device.FingerprintBytes()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FingerprintBytes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("FingerprintBytes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("FingerprintBytes() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
