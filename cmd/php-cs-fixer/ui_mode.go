package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	return readSwitch("--ui", value)
}

func readSwitch(flag, value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid %s value %q (expected auto|on|off)", flag, value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// applyColorMode sets the process-wide fatih/color switch and reports
// whether colors are on.
func applyColorMode(value string) (bool, error) {
	mode, err := readSwitch("--color", value)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		color.NoColor = false
	case uiModeOff:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != ""
	}
	return !color.NoColor, nil
}
