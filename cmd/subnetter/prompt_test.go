package main

import (
	"bytes"
	"strings"
	"testing"
)

func runLoop(t *testing.T, input string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	runPromptLoop(strings.NewReader(input), &renderer{w: buf})
	return buf.String()
}

func TestPromptLoopQuit(t *testing.T) {
	out := runLoop(t, "q\n")
	if !strings.Contains(out, "Subnetter") {
		t.Errorf("banner missing:\n%s", out)
	}
	if strings.Contains(out, "Network Address") {
		t.Errorf("result printed without input:\n%s", out)
	}
}

func TestPromptLoopCombinedForm(t *testing.T) {
	out := runLoop(t, "192.168.1.0/24\nquit\n")
	if !strings.Contains(out, "192.168.1.255") {
		t.Errorf("result not printed:\n%s", out)
	}
	// CIDR form skips the mask prompt.
	if strings.Count(out, "Subnet Mask (dotted or /CIDR)") != 0 {
		t.Errorf("mask prompt shown for CIDR input:\n%s", out)
	}
}

func TestPromptLoopSeparateMask(t *testing.T) {
	out := runLoop(t, "10.0.0.0\n255.255.255.252\nexit\n")
	if !strings.Contains(out, "10.0.0.2") {
		t.Errorf("result not printed:\n%s", out)
	}
	if !strings.Contains(out, "Subnet Mask (dotted or /CIDR)") {
		t.Errorf("mask prompt not shown:\n%s", out)
	}
}

func TestPromptLoopReusesPrevious(t *testing.T) {
	// Second round reuses the previous address and mask via empty lines.
	out := runLoop(t, "10.0.0.0\n/30\n\n\nq\n")
	if strings.Count(out, "Usable Hosts") != 2 {
		t.Errorf("expected two results:\n%s", out)
	}
	if !strings.Contains(out, "[10.0.0.0]") {
		t.Errorf("previous value not offered as default:\n%s", out)
	}
}

func TestPromptLoopErrorThenRetry(t *testing.T) {
	out := runLoop(t, "300.1.1.1/24\n192.168.1.0/24\nq\n")
	if !strings.Contains(out, "error:") {
		t.Errorf("parse failure not reported:\n%s", out)
	}
	if !strings.Contains(out, "192.168.1.255") {
		t.Errorf("loop did not recover after error:\n%s", out)
	}
}

func TestPromptLoopEOF(t *testing.T) {
	// Input ending without a quit command terminates the loop.
	out := runLoop(t, "192.168.1.0/24\n")
	if !strings.Contains(out, "192.168.1.255") {
		t.Errorf("result not printed before EOF:\n%s", out)
	}
}

func TestIsQuit(t *testing.T) {
	for _, s := range []string{"q", "Q", "quit", "QUIT", "exit"} {
		if !isQuit(s) {
			t.Errorf("isQuit(%q) = false", s)
		}
	}
	for _, s := range []string{"", "qq", "done", "192.168.1.0"} {
		if isQuit(s) {
			t.Errorf("isQuit(%q) = true", s)
		}
	}
}
