package main

import (
	"fmt"
	"io"
)

// Warm gradient, one color per banner row.
var bannerColors = []string{
	"\x1b[38;5;226m",
	"\x1b[38;5;220m",
	"\x1b[38;5;214m",
	"\x1b[38;5;208m",
	"\x1b[38;5;202m",
	"\x1b[38;5;196m",
}

var bannerLines = []string{
	"██████╗  ██████╗██╗     ██╗██████╗     ███╗   ███╗ ██████╗██████╗ ",
	"██╔══██╗██╔════╝██║     ██║╚════██╗    ████╗ ████║██╔════╝██╔══██╗",
	"██████╔╝██║     ██║     ██║ █████╔╝    ██╔████╔██║██║     ██████╔╝",
	"██╔═══╝ ██║     ██║     ██║██╔═══╝     ██║╚██╔╝██║██║     ██╔═══╝ ",
	"██║     ╚██████╗███████╗██║███████╗    ██║ ╚═╝ ██║╚██████╗██║     ",
	"╚═╝      ╚═════╝╚══════╝╚═╝╚══════╝    ╚═╝     ╚═╝ ╚═════╝╚═╝     ",
}

// printBanner writes the startup banner. It goes to stderr so the
// stdio transport's stdout stays clean.
func printBanner(w io.Writer) {
	for i, line := range bannerLines {
		fmt.Fprintf(w, "%s%s\x1b[0m\n", bannerColors[i%len(bannerColors)], line)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "        MCP Server for the Physna pcli2 CLI")
	fmt.Fprintln(w)
}
