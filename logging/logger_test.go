package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestErrorLineIsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	fields := Fields{"knight": "k1"}
	Error("hit failed", errors.New("boom"), fields)

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if got["level"] != "error" || got["msg"] != "hit failed" || got["error"] != "boom" || got["knight"] != "k1" {
		t.Fatalf("unexpected line: %v", got)
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("caller fields were mutated")
	}
}
