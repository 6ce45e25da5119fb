package server

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"5", Version{5, 0, 0}},
		{"5.3", Version{5, 3, 0}},
		{"5.3.1", Version{5, 3, 1}},
		{"8.11.2-SNAPSHOT", Version{8, 11, 2}},
		{"9.4.0 abc123 - builder - 2023-10-01", Version{9, 4, 0}},
		{" 7.7 ", Version{7, 7, 0}},
		{"6.6.6.1", Version{6, 6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseVersion_Unparsable(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "5.x", "5.", ".3", "-1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseVersion(in)
			if !errors.Is(err, ErrUnparsableVersion) {
				t.Errorf("expected ErrUnparsableVersion for %q, got %v", in, err)
			}
		})
	}
}

func TestVersion_Tier(t *testing.T) {
	v := Version{Major: 5, Minor: 3}
	if v.Tier() != Solr5 {
		t.Errorf("expected solr_5, got %s", v.Tier())
	}
	if (Version{Major: 4}).Tier().IsSupported() {
		t.Error("solr_4 should not be supported")
	}
	if !(Version{Major: 9}).Tier().IsSupported() {
		t.Error("solr_9 should be supported")
	}
}

func TestResolution(t *testing.T) {
	if _, ok := Unresolved().Version(); ok {
		t.Error("Unresolved must not report a version")
	}
	v, ok := Resolved(Version{8, 1, 0}).Version()
	if !ok || v != (Version{8, 1, 0}) {
		t.Errorf("unexpected resolution: %v %v", v, ok)
	}
}
