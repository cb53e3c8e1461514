package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/globalplace/pkg/errors"
	"github.com/matzehuels/globalplace/pkg/place"
)

const testDevice = `
name = "toy24"
grid_x = 24
grid_y = 24

[compat]
LUT4 = ["SLICE"]

[[fill]]
type = "SLICE"
per_tile = 1
`

const testNetlist = `{
  "cells": [
    {"name": "pin", "type": "LUT4", "attrs": {"BEL": "X0Y0/SLICE0"}},
    {"name": "a", "type": "LUT4"},
    {"name": "b", "type": "LUT4"}
  ],
  "nets": [
    {"name": "pin_o", "driver": {"cell": "pin", "port": "O"}, "users": [{"cell": "a", "port": "I0"}]},
    {"name": "a_o", "driver": {"cell": "a", "port": "O"}, "users": [{"cell": "b", "port": "I0"}]}
  ]
}`

// swapOut redirects status output for the duration of the test.
func swapOut(t *testing.T, w io.Writer) {
	t.Helper()
	prev := out
	out = w
	t.Cleanup(func() { out = prev })
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var status, logs bytes.Buffer
	swapOut(t, &status)

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return status.String(), err
}

func TestDefaultResultPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"design.json", "design.placed.json"},
		{"out/top.netlist.json", "out/top.netlist.placed.json"},
		{"noext", "noext.placed.json"},
	}
	for _, tt := range tests {
		if got := defaultResultPath(tt.in); got != tt.want {
			t.Errorf("defaultResultPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlaceCommand(t *testing.T) {
	dir := t.TempDir()
	nl := writeFile(t, dir, "design.json", testNetlist)
	dev := writeFile(t, dir, "toy.toml", testDevice)
	heat := filepath.Join(dir, "heat.dot")

	status, err := runCLI(t, "place", nl, "--device", dev, "--capacity", "50", "--heatmap", heat)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !strings.Contains(status, "Global placement complete") || !strings.Contains(status, "not yet implemented") {
		t.Errorf("status output:\n%s", status)
	}

	rep, err := place.ReadReportFile(filepath.Join(dir, "design.placed.json"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Capacity != 50 || rep.Constrained != 1 || rep.Binned != 1 {
		t.Errorf("report capacity=%d constrained=%d binned=%d", rep.Capacity, rep.Constrained, rep.Binned)
	}
	nets := 0
	for _, b := range rep.Bins {
		nets += len(b.Nets)
	}
	if nets != 2 {
		t.Errorf("report holds %d nets, want 2", nets)
	}

	dot, err := os.ReadFile(heat)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("heatmap is not DOT: %.40s", dot)
	}
}

func TestPlaceCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	nl := writeFile(t, dir, "design.json", testNetlist)
	dev := writeFile(t, dir, "toy.toml", testDevice)
	cfg := writeFile(t, dir, "placer.toml", "capacity = 7\n")
	output := filepath.Join(dir, "custom.json")

	if _, err := runCLI(t, "place", nl, "-d", dev, "-c", cfg, "-o", output); err != nil {
		t.Fatal(err)
	}
	rep, err := place.ReadReportFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Capacity != 7 {
		t.Errorf("capacity = %d, want 7 from config", rep.Capacity)
	}
}

func TestPlaceCommandErrors(t *testing.T) {
	dir := t.TempDir()
	dev := writeFile(t, dir, "toy.toml", testDevice)
	badSite := writeFile(t, dir, "bad.json", strings.Replace(testNetlist, "X0Y0/SLICE0", "X99Y0/SLICE0", 1))
	good := writeFile(t, dir, "good.json", testNetlist)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing netlist", []string{"place", filepath.Join(dir, "nope.json"), "-d", dev}, errors.ErrCodeFileNotFound},
		{"missing device", []string{"place", good, "-d", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"broken device", []string{"place", good, "-d", writeFile(t, dir, "broken.toml", "grid_x = 0\n")}, errors.ErrCodeInvalidDevice},
		{"unknown site", []string{"place", badSite, "-d", dev}, errors.ErrCodeSiteNotFound},
		{"negative capacity", []string{"place", good, "-d", dev, "--capacity", "-1"}, errors.ErrCodeInvalidConfig},
		{"bad heatmap", []string{"place", good, "-d", dev, "--heatmap", filepath.Join(dir, "heat.png")}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.placed.json")); err == nil {
		t.Error("a failed run must not write a result")
	}
}

func TestOccupancyCommand(t *testing.T) {
	dir := t.TempDir()
	nl := writeFile(t, dir, "design.json", testNetlist)
	dev := writeFile(t, dir, "toy.toml", testDevice)
	if _, err := runCLI(t, "place", nl, "-d", dev, "--capacity", "1"); err != nil {
		t.Fatal(err)
	}

	status, err := runCLI(t, "occupancy", filepath.Join(dir, "design.placed.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "Bin whitespace") || !strings.Contains(status, "capacity") {
		t.Errorf("occupancy output:\n%s", status)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var buf bytes.Buffer
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "globalplace") {
				t.Errorf("%s completion should mention the command name", shell)
			}
		})
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unknown shell should be rejected")
	}
}

func TestPlaceFileCompletion(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"place", ""}, []string{"json"}},
		{[]string{"place", "--device", ""}, []string{"toml"}},
		{[]string{"place", "--config", ""}, []string{"toml"}},
		{[]string{"place", "--heatmap", ""}, []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var buf bytes.Buffer
			root.SetOut(&buf)
			root.SetErr(io.Discard)
			root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			got := lines[:len(lines)-1]
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
		})
	}
}
