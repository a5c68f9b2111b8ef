package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.GoVersion != runtime.Version() {
		t.Errorf("go version = %q", info.GoVersion)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("platform = %q", info.Platform)
	}
}

func TestString_Dirty(t *testing.T) {
	info := Info{GitVersion: "v1.0.0", GitTreeState: "dirty"}
	if info.String() != "v1.0.0-dirty" {
		t.Errorf("String() = %q", info.String())
	}
	info.GitTreeState = "clean"
	if info.String() != "v1.0.0" {
		t.Errorf("String() = %q", info.String())
	}
}

func TestJSONAndText(t *testing.T) {
	info := Get()

	s, err := info.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var decoded Info
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded != info {
		t.Errorf("decoded %+v, want %+v", decoded, info)
	}

	text := info.Text()
	for _, key := range []string{"version:", "commit:", "go:", "platform:"} {
		if !strings.Contains(text, key) {
			t.Errorf("text output missing %q", key)
		}
	}
}
