package main

import (
	"bytes"
	"strings"
	"testing"

	"subnetter/internal/subnet"
)

func computeFor(t *testing.T, input, mask string) subnet.Result {
	t.Helper()
	addr, prefix, err := subnet.Parse(input, mask)
	if err != nil {
		t.Fatalf("Parse(%q, %q): %v", input, mask, err)
	}
	return subnet.Compute(addr, prefix)
}

func TestPrintResultPlain(t *testing.T) {
	buf := &bytes.Buffer{}
	r := &renderer{w: buf}
	r.printResult(computeFor(t, "192.168.1.10/24", ""))

	out := buf.String()
	wants := []string{
		"IP Address", "192.168.1.10",
		"CIDR", "/24",
		"Subnet Mask", "255.255.255.0",
		"Wildcard Mask", "0.0.0.255",
		"Network Address", "192.168.1.0",
		"Broadcast Address", "192.168.1.255",
		"First Host", "192.168.1.1",
		"Last Host", "192.168.1.254",
		"Total Addresses", "256",
		"Usable Hosts", "254",
		"Host Bits", "8",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("plain renderer emitted ANSI escapes")
	}
}

func TestPrintResultPeerLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	r := &renderer{w: buf}
	r.printResult(computeFor(t, "10.0.0.0/31", ""))

	out := buf.String()
	if !strings.Contains(out, "Peer Address (/31)") {
		t.Errorf("missing /31 peer label:\n%s", out)
	}
	if strings.Contains(out, "Broadcast Address") {
		t.Errorf("/31 result should not use the broadcast label:\n%s", out)
	}
	if !strings.Contains(out, "note:") {
		t.Errorf("/31 result missing point-to-point note:\n%s", out)
	}
}

func TestNewRendererNonFileDisablesColor(t *testing.T) {
	r := newRenderer(&bytes.Buffer{}, true)
	if r.color {
		t.Error("color enabled for non-terminal writer")
	}
}

func TestNewRendererNoColorFlag(t *testing.T) {
	r := newRenderer(&bytes.Buffer{}, false)
	if r.color {
		t.Error("color enabled despite --no-color")
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := writeCSV(buf, computeFor(t, "192.168.1.0/24", "")); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"field,value",
		"ip,192.168.1.0",
		"cidr,24",
		"network,192.168.1.0",
		"broadcast,192.168.1.255",
		"netmask,255.255.255.0",
		"wildcard,0.0.0.255",
		"first_host,192.168.1.1",
		"last_host,192.168.1.254",
		"total_hosts,256",
		"usable_hosts,254",
		"host_bits,8",
	}
	if len(lines) != len(want) {
		t.Fatalf("csv has %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if strings.TrimRight(lines[i], "\r") != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
