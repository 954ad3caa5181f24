package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"subnetter/internal/subnet"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// renderer writes human-readable output, with ANSI colors when the
// destination is a terminal and NO_COLOR is unset.
type renderer struct {
	w     io.Writer
	color bool
}

func newRenderer(w io.Writer, wantColor bool) *renderer {
	color := wantColor && os.Getenv("NO_COLOR") == ""
	if color {
		if f, ok := w.(*os.File); ok {
			info, err := f.Stat()
			color = err == nil && info.Mode()&os.ModeCharDevice != 0
		} else {
			color = false
		}
	}
	return &renderer{w: w, color: color}
}

func (r *renderer) c(text, code string) string {
	if !r.color {
		return text
	}
	return code + text + ansiReset
}

func (r *renderer) printBanner() {
	fmt.Fprintln(r.w, r.c("Subnetter", ansiBold), r.c("IPv4 subnet calculator", ansiDim))
	fmt.Fprintln(r.w, r.c("Enter q to quit; empty input reuses the previous value.", ansiDim))
	fmt.Fprintln(r.w)
}

func (r *renderer) printPrompt(label, previous string) {
	if previous != "" {
		fmt.Fprintf(r.w, "%s %s: ", r.c(label, ansiCyan), r.c("["+previous+"]", ansiDim))
		return
	}
	fmt.Fprintf(r.w, "%s: ", r.c(label, ansiCyan))
}

func (r *renderer) printError(err error) {
	fmt.Fprintln(r.w, r.c("error:", ansiRed), err)
	fmt.Fprintln(r.w)
}

func (r *renderer) printResult(res subnet.Result) {
	broadcastLabel := "Broadcast Address"
	if res.CIDR == 31 {
		broadcastLabel = "Peer Address (/31)"
	}

	fmt.Fprintln(r.w)
	r.row("IP Address", res.IP)
	r.row("CIDR", fmt.Sprintf("/%d", res.CIDR))
	r.row("Subnet Mask", res.Netmask)
	r.row("Wildcard Mask", res.Wildcard)
	r.row("Network Address", res.Network)
	r.row(broadcastLabel, res.Broadcast)
	r.row("First Host", r.c(res.FirstHost, ansiGreen))
	r.row("Last Host", r.c(res.LastHost, ansiGreen))
	r.row("Total Addresses", fmt.Sprintf("%d", res.TotalHosts))
	r.row("Usable Hosts", fmt.Sprintf("%d", res.UsableHosts))
	r.row("Host Bits", fmt.Sprintf("%d", res.HostBits))
	for _, note := range res.Notes {
		fmt.Fprintln(r.w, r.c("  note: "+note, ansiYellow))
	}
	fmt.Fprintln(r.w)
}

func (r *renderer) row(label, value string) {
	fmt.Fprintf(r.w, "  %-20s %s\n", r.c(label, ansiBold), value)
}

// writeCSV emits the two-column field,value export format.
func writeCSV(w io.Writer, res subnet.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "value"}); err != nil {
		return err
	}
	for _, f := range res.Fields() {
		if err := cw.Write([]string{f[0], f[1]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
