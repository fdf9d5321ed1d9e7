package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoshi.log")
	log, closer, err := New(path, "info")
	if nil != err {
		t.Fatal(err)
	}
	log.WithField("notes", 12).Info("round started")
	log.Debug("hidden")
	closer.Close()

	data, err := os.ReadFile(path)
	if nil != err {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "round started") || !strings.Contains(out, "notes=12") || strings.Contains(out, "hidden") {
		t.Fatalf("log output %q", out)
	}
}

func TestNewRejectsLevel(t *testing.T) {
	if _, _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); nil == err {
		t.Fatal("expected error")
	}
}
