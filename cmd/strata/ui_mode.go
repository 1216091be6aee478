package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects the progress view of strata check.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q for strata check (want auto, on or off)", value)
	}
}

// wantsProgressUI reports whether check should draw the progress view. Only
// pretty output shares the terminal with it.
func wantsProgressUI(mode uiMode, format outputFormat) bool {
	if format != formatPretty {
		return false
	}
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout) && isTerminal(os.Stderr)
	}
}
