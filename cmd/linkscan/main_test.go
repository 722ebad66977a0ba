package main

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestSplitComma(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{"**/node_modules,*.bak", []string{"**/node_modules", "*.bak"}},
		{",,,", nil},
	}
	for _, tt := range tests {
		if got := splitComma(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitComma(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_Levels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if _, err := newLogger(level, false); err != nil {
			t.Errorf("newLogger(%q) failed: %v", level, err)
		}
	}
	if _, err := newLogger("verbose", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewLogger_QuietClampsToWarn(t *testing.T) {
	log, err := newLogger("debug", true)
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() < zerolog.WarnLevel {
		t.Fatalf("quiet logger level = %v, want >= warn", log.GetLevel())
	}
}
