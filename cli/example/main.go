// Example program demonstrating the terminal viewer.
//
// This shows a generated document full screen in your actual terminal,
// with line wrapping enabled and a confirm action on the status bar.
//
// Controls:
//   - Up/Down or k/j: scroll one row
//   - PageUp/PageDown, b/f or Space: scroll one page
//   - Home/End or g/G: jump to top/bottom
//   - Enter: accept (exit code 1)
//   - Escape or q: dismiss (exit code 0)
//
// Usage:
//   go run main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/zcl226403/TvTextViewer/cli"
)

func main() {
	var b strings.Builder
	b.WriteString("Release notes\n")
	b.WriteString("=============\n\n")
	for i := 1; i <= 60; i++ {
		fmt.Fprintf(&b, "%2d. Change entry number %d, with enough trailing "+
			"description text that the line wraps on a narrow terminal.\n", i, i)
	}

	viewer, err := cli.New(cli.Options{
		Text:           b.String(),
		Title:          "Release notes",
		YesButtonLabel: "Accept",
		WrapLines:      true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create viewer: %v\n", err)
		os.Exit(2)
	}

	code, err := viewer.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("viewer exited with code %d\n", code)
	os.Exit(code)
}
