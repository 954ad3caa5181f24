package main

import (
	"bufio"
	"io"
	"strings"

	"subnetter/internal/subnet"
)

// session remembers the previous address and mask so an empty entry can
// reuse them. This is UI state only; the calculator itself is stateless.
type session struct {
	lastInput string
	lastMask  string
}

// runPromptLoop reads address/mask pairs until the user quits. Parse
// failures are reported and the loop re-asks.
func runPromptLoop(in io.Reader, out *renderer) {
	out.printBanner()
	scanner := bufio.NewScanner(in)
	var sess session

	for {
		input, ok := prompt(scanner, out, "IP Address (or IP/CIDR)", sess.lastInput)
		if !ok {
			return
		}
		if isQuit(input) {
			return
		}

		mask := ""
		if !strings.Contains(input, "/") {
			mask, ok = prompt(scanner, out, "Subnet Mask (dotted or /CIDR)", sess.lastMask)
			if !ok {
				return
			}
			if isQuit(mask) {
				return
			}
		}

		addr, prefix, err := subnet.Parse(input, mask)
		if err != nil {
			out.printError(err)
			continue
		}
		sess.lastInput = input
		sess.lastMask = mask

		out.printResult(subnet.Compute(addr, prefix))
	}
}

// prompt asks for one value, offering the previous one as the default.
// ok is false when input is exhausted.
func prompt(scanner *bufio.Scanner, out *renderer, label, previous string) (string, bool) {
	for {
		out.printPrompt(label, previous)
		if !scanner.Scan() {
			return "", false
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if previous != "" {
				return previous, true
			}
			continue
		}
		return line, true
	}
}

func isQuit(s string) bool {
	switch strings.ToLower(s) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
