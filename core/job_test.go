package core

import "testing"

func TestParseMemory(t *testing.T) {
	tests := []struct {
		req  string
		want int
	}{
		{"10gb", 10},
		{"10G", 10},
		{"1024mb", 1},
		{"1500mb", 2},
		{"512", 1},
		{"1tb", 1024},
		{"2097152kb", 2},
	}
	for _, test := range tests {
		got, err := ParseMemory(test.req)
		if err != nil {
			t.Errorf("%s: %v", test.req, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %d, wanted %d", test.req, got, test.want)
		}
	}
}

func TestParseMemoryInvalid(t *testing.T) {
	for _, req := range []string{"", "lots", "gb10"} {
		if _, err := ParseMemory(req); err == nil {
			t.Errorf("%q: expected error", req)
		}
	}
}

func TestValidWalltime(t *testing.T) {
	valid := []string{"00:30:00", "30:00", "120:00:00", "9:59"}
	for _, req := range valid {
		if !ValidWalltime(req) {
			t.Errorf("%q should be valid", req)
		}
	}
	invalid := []string{"", "30", "00:61:00", "00:30:61", "sideways"}
	for _, req := range invalid {
		if ValidWalltime(req) {
			t.Errorf("%q should be invalid", req)
		}
	}
}
