package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gcpick/internal/logging"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logging.Setup("debug", "json", &buf)
	log.Debug("stored point", "col", 10, "row", 20)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "stored point" || rec["level"] != "DEBUG" {
		t.Errorf("record = %v", rec)
	}
	if rec["col"] != float64(10) {
		t.Errorf("col attr = %v, want 10", rec["col"])
	}
}

func TestSetupDefaultLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logging.Setup("", "text", &buf)
	log.Debug("hidden")
	log.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line passed the default level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing:\n%s", out)
	}
}

func TestDiscard(t *testing.T) {
	log := logging.Discard()
	if log == nil {
		t.Fatal("Discard returned nil")
	}
	log.Error("dropped")
}
