// Command tvtextviewer displays a text file, an inline message, or the
// output of a script in a full-screen terminal viewer.
//
// Usage:
//
//	tvtextviewer [flags] [input_file]
//
// Exactly one text source must be given: a positional input file, -s
// with a script to run, or -m with an inline message. The process exit
// code reports how the viewer was closed: 0 for dismiss, 1 for the yes
// button (when -y is given).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"

	tvtextviewer "github.com/zcl226403/TvTextViewer"
	"github.com/zcl226403/TvTextViewer/cli"
)

type config struct {
	inputFile    string
	scriptFile   string
	message      string
	title        string
	yesButton    string
	fontSize     int
	errorDisplay bool
	wrapLines    bool
}

func parseArgs(args []string) (*config, error) {
	fs := flag.NewFlagSet("tvtextviewer", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tvtextviewer [flags] [input_file]\n\n")
		fs.PrintDefaults()
	}

	cfg := &config{}
	fs.StringVar(&cfg.scriptFile, "s", "", "script to run; its output is viewed")
	fs.StringVar(&cfg.message, "m", "", "text to show instead of viewing a file")
	fs.StringVar(&cfg.title, "t", "", "viewer title (filename by default)")
	fs.IntVar(&cfg.fontSize, "f", 0, "font size in pixels (used by the GUI frontends; ignored in a terminal)")
	fs.StringVar(&cfg.yesButton, "y", "", "shows a yes button with the given label and a different exit code")
	fs.BoolVar(&cfg.errorDisplay, "e", false, "format as error, title bar will be red")
	fs.BoolVar(&cfg.wrapLines, "w", false, "wrap long lines of text")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.inputFile = fs.Arg(0)
	default:
		return nil, fmt.Errorf("at most one input file may be given")
	}

	sources := 0
	for _, set := range []bool{cfg.inputFile != "", cfg.scriptFile != "", cfg.message != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one of input_file, -s or -m must be given")
	}

	return cfg, nil
}

// readText resolves the configured text source. Script output is
// captured to completion before viewing; stdout and stderr interleave
// as the script produced them.
func readText(cfg *config) (string, error) {
	switch {
	case cfg.inputFile != "":
		data, err := os.ReadFile(cfg.inputFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", cfg.inputFile, err)
		}
		return string(data), nil

	case cfg.scriptFile != "":
		out, err := exec.Command(cfg.scriptFile).CombinedOutput()
		if err != nil {
			if len(out) == 0 {
				return "", fmt.Errorf("running %s: %w", cfg.scriptFile, err)
			}
			// Show what the script printed; its failure is part of
			// the output being reviewed.
			return string(out) + "\n" + err.Error() + "\n", nil
		}
		return string(out), nil

	default:
		return tvtextviewer.DecodeEscapes(cfg.message), nil
	}
}

func determineTitle(cfg *config) string {
	switch {
	case cfg.title != "":
		return cfg.title
	case cfg.inputFile != "":
		return cfg.inputFile
	case cfg.scriptFile != "":
		return cfg.scriptFile
	case cfg.errorDisplay:
		return "Error!!"
	default:
		return "Info"
	}
}

func run() (int, error) {
	cfg, err := parseArgs(os.Args[1:])
	if err == flag.ErrHelp {
		return 0, nil
	}
	if err != nil {
		return 2, err
	}

	text, err := readText(cfg)
	if err != nil {
		return 2, err
	}

	viewer, err := cli.New(cli.Options{
		Text:           text,
		Title:          determineTitle(cfg),
		YesButtonLabel: cfg.yesButton,
		ErrorDisplay:   cfg.errorDisplay,
		WrapLines:      cfg.wrapLines,
	})
	if err != nil {
		return 2, err
	}

	code, err := viewer.Run()
	if err != nil {
		return 2, err
	}
	return code, nil
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tvtextviewer:", err)
	}
	os.Exit(code)
}
