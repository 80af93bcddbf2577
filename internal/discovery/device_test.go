package discovery

import "testing"

func TestBridge_String(t *testing.T) {
	bridge := &Bridge{
		Name:     "UWATEC Galileo Sol",
		Hostname: "irbridge-1f2e.local",
		IP:       "192.168.4.16",
		Port:     2000,
	}

	expected := "UWATEC Galileo Sol via irbridge-1f2e.local at 192.168.4.16:2000"
	if bridge.String() != expected {
		t.Errorf("Bridge.String() = %v, want %v", bridge.String(), expected)
	}
}

func TestBridge_Address(t *testing.T) {
	bridge := &Bridge{IP: "10.0.0.5", Port: 2001}
	if got := bridge.Address(); got != "10.0.0.5:2001" {
		t.Errorf("Bridge.Address() = %v, want 10.0.0.5:2001", got)
	}
}

func TestIsDiveComputer(t *testing.T) {
	tests := []struct {
		name     string
		device   string
		expected bool
	}{
		{
			name:     "galileo sol full name",
			device:   "UWATEC Galileo Sol",
			expected: true,
		},
		{
			name:     "uwatec smart full name",
			device:   "Uwatec Smart Tec",
			expected: true,
		},
		{
			name:     "aladin",
			device:   "Aladin Tec 2G",
			expected: true,
		},
		{
			name:     "uppercase aladin",
			device:   "ALADIN PRIME",
			expected: true,
		},
		{
			name:     "bare smart substring",
			device:   "SmartCom",
			expected: true,
		},
		{
			name:     "uppercase galileo",
			device:   "GALILEO TERRA",
			expected: true,
		},
		{
			name:     "unrelated device",
			device:   "HP Printer",
			expected: false,
		},
		{
			name:     "empty name",
			device:   "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDiveComputer(tt.device); got != tt.expected {
				t.Errorf("IsDiveComputer(%q) = %v, want %v", tt.device, got, tt.expected)
			}
		})
	}
}

func TestBridge_GetMetadata(t *testing.T) {
	bridge := &Bridge{
		Metadata: map[string]string{
			"device":  "Uwatec Smart",
			"srcvers": "2.1",
		},
	}

	if got := bridge.GetMetadata("device"); got != "Uwatec Smart" {
		t.Errorf("GetMetadata(device) = %v, want Uwatec Smart", got)
	}
	if got := bridge.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty", got)
	}

	var empty Bridge
	if got := empty.GetMetadata("device"); got != "" {
		t.Errorf("GetMetadata on nil metadata = %v, want empty", got)
	}
}
