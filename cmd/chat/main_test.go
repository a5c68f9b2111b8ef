package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRun_RelaysInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Go to Settings > Account > Reset Password.")
	}))
	defer server.Close()

	var out bytes.Buffer
	opts := options{url: server.URL, width: 100, height: 10}
	in := strings.NewReader("\nHow do I reset my password?\n")

	if err := run(context.Background(), opts, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"How do I reset my password?", "Go to Settings > Account > Reset Password.", "[Send] > "} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "-o", "json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out.String(), `"goVersion"`) {
		t.Errorf("unexpected output: %s", out.String())
	}
}
