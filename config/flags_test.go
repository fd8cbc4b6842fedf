package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	var out bytes.Buffer
	f, err := ParseFlags(nil, &out)
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if f.SocketPort != DefaultSocketPort {
		t.Errorf("SocketPort = %d, want %d", f.SocketPort, DefaultSocketPort)
	}
	if f.HTTPPort != DefaultHTTPPort {
		t.Errorf("HTTPPort = %d, want %d", f.HTTPPort, DefaultHTTPPort)
	}
	if f.PrivateKeyPath == "" {
		t.Error("PrivateKeyPath should default to a non-empty path")
	}
	if f.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", f.LogLevel)
	}
	if f.LogJSON {
		t.Error("LogJSON should default to false")
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	var out bytes.Buffer
	f, err := ParseFlags([]string{
		"--socket-port", "4000",
		"--http-port", "9000",
		"--private-key-path", "/tmp/key.hex",
		"--log-level", "debug",
		"--log-json",
	}, &out)
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if f.SocketPort != 4000 {
		t.Errorf("SocketPort = %d, want 4000", f.SocketPort)
	}
	if f.HTTPPort != 9000 {
		t.Errorf("HTTPPort = %d, want 9000", f.HTTPPort)
	}
	if f.PrivateKeyPath != "/tmp/key.hex" {
		t.Errorf("PrivateKeyPath = %q, want /tmp/key.hex", f.PrivateKeyPath)
	}
	if f.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", f.LogLevel)
	}
	if !f.LogJSON {
		t.Error("LogJSON should be true")
	}
}

func TestParseFlags_UnknownFlagFails(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags([]string{"--bogus-flag"}, &out)
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(out.String(), "bogus-flag") {
		t.Errorf("usage output should mention the bad flag, got: %s", out.String())
	}
}

func TestFlags_ToConfig(t *testing.T) {
	f := &Flags{
		SocketPort:     2794,
		HTTPPort:       8000,
		PrivateKeyPath: "/tmp/key.hex",
		LogLevel:       "warn",
		LogJSON:        true,
	}
	cfg := f.ToConfig()
	if cfg.SocketAddr != ":2794" {
		t.Errorf("SocketAddr = %q, want :2794", cfg.SocketAddr)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.PrivateKeyPath != "/tmp/key.hex" {
		t.Errorf("PrivateKeyPath = %q, want /tmp/key.hex", cfg.PrivateKeyPath)
	}
	if cfg.LogLevel != "warn" || !cfg.LogJSON {
		t.Errorf("log settings not carried through: %+v", cfg)
	}
}
