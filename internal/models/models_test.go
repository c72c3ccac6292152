// ABOUTME: Tests for registry models.
// ABOUTME: Covers timestamp round-tripping, store cloning, and filter parsing.
package models

import (
	"testing"
	"time"
)

func TestStampRoundtrip(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 9, 7, 42, 0, time.Local)
	s := FormatStamp(ts)
	if s != "05.03.2024 09:07" {
		t.Fatalf("FormatStamp = %q", s)
	}
	parsed, err := ParseStamp(s)
	if err != nil {
		t.Fatalf("ParseStamp error: %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Minute)) {
		t.Errorf("ParseStamp = %v, want %v", parsed, ts.Truncate(time.Minute))
	}
}

func TestParseStampRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-03-05 09:07", "32.01.2024 10:00"} {
		if _, err := ParseStamp(in); err == nil {
			t.Errorf("ParseStamp(%q) expected error", in)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewStore()
	s.Partners["A1"] = Partner{ID: "A1", Name: "Acme"}

	c := s.Clone()
	c.Partners["B2"] = Partner{ID: "B2", Name: "Beta"}
	p := c.Partners["A1"]
	p.Folder = "changed"
	c.Partners["A1"] = p

	if s.Len() != 1 {
		t.Errorf("original store grew to %d partners", s.Len())
	}
	if s.Partners["A1"].Folder != "" {
		t.Error("original partner mutated through clone")
	}
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in   string
		want FilterMode
	}{
		{"all", FilterAll},
		{"missing", FilterMissingFolder},
		{"Missing-Folder", FilterMissingFolder},
		{"search", FilterSearch},
		{"", FilterAll},
		{"bogus", FilterAll},
	}
	for _, tt := range tests {
		if got := ParseFilterMode(tt.in); got != tt.want {
			t.Errorf("ParseFilterMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
