package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Bridge represents a discovered serial bridge with a dive computer in range.
type Bridge struct {
	// Name is the advertised name of the dive computer behind the bridge
	// (e.g., "UWATEC Galileo Sol")
	Name string

	// Hostname is the mDNS hostname of the bridge
	Hostname string

	// IP is the IPv4 address of the bridge
	IP string

	// Port is the TCP port carrying the serial stream
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the bridge was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the bridge.
func (b *Bridge) String() string {
	return fmt.Sprintf("%s via %s at %s:%d", b.Name, b.Hostname, b.IP, b.Port)
}

// Address returns the "host:port" dial address for the bridge.
func (b *Bridge) Address() string {
	return fmt.Sprintf("%s:%d", b.IP, b.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found.
func (b *Bridge) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}

// knownNames are the device-name fragments that identify a compatible dive
// computer. The first two are exact product prefixes, the rest catch the
// many naming variants seen in the field.
var knownNames = []string{
	"UWATEC Galileo Sol",
	"Uwatec Smart",
	"Uwatec", "UWATEC",
	"Aladin", "ALADIN",
	"Smart", "SMART",
	"Galileo", "GALILEO",
}

// IsDiveComputer reports whether name identifies a compatible dive
// computer.
func IsDiveComputer(name string) bool {
	for _, known := range knownNames {
		if strings.Contains(name, known) {
			return true
		}
	}
	return false
}
