package netlist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "cells": [
    {"name": "lut0", "type": "LUT4", "attrs": {"BEL": "X0Y0/LUT0"}},
    {"name": "ff0", "type": "DFF"},
    {"name": "gnd", "type": "GND", "pseudo": true}
  ],
  "nets": [
    {"name": "q", "driver": {"cell": "lut0", "port": "O"}, "users": [{"cell": "ff0", "port": "D"}]},
    {"name": "floating", "users": [{"cell": "ff0", "port": "CE"}]}
  ]
}`

func TestRead(t *testing.T) {
	nl, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if nl.CellCount() != 3 || nl.NetCount() != 2 {
		t.Fatalf("counts = %d cells, %d nets", nl.CellCount(), nl.NetCount())
	}

	gnd, _ := nl.CellByName("gnd")
	if !nl.Cell(gnd).Pseudo {
		t.Error("gnd should be pseudo")
	}

	q, ok := nl.NetByName("q")
	if !ok {
		t.Fatal("net q missing")
	}
	_, driver, ok := nl.DriverCell(q)
	if !ok || driver.Name != "lut0" {
		t.Errorf("driver of q = %v", driver)
	}
	if site, _ := driver.FixedSite(); site != "X0Y0/LUT0" {
		t.Errorf("fixed site = %q", site)
	}

	floating, _ := nl.NetByName("floating")
	if nl.Net(floating).HasDriver() {
		t.Error("floating should be undriven")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown user", `{"cells":[{"name":"a"}],"nets":[{"name":"n","users":[{"cell":"b"}]}]}`, ErrUnknownCell},
		{"unknown driver", `{"cells":[],"nets":[{"name":"n","driver":{"cell":"b"}}]}`, ErrUnknownCell},
		{"duplicate cell", `{"cells":[{"name":"a"},{"name":"a"}],"nets":[]}`, ErrDuplicateCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Read(strings.NewReader("{")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	nl, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "netlist.json")
	if err := WriteFile(nl, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	a, _ := Marshal(nl)
	b, _ := Marshal(back)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip mismatch:\n%s\n---\n%s", a, b)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}
