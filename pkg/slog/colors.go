package slog

import (
	"os"

	"golang.org/x/term"
)

const keyEscape = "\033"

var (
	reset            = keyEscape + "[0m"
	greyBold         = keyEscape + "[1;90m"
	redBold          = keyEscape + "[1;31m"
	redBrightBold    = keyEscape + "[1;91m"
	yellowBrightBold = keyEscape + "[1;93m"
	blueBrightBold   = keyEscape + "[1;94m"
	cyanBold         = keyEscape + "[1;36m"
)

// IsTerminal reports whether f is attached to a terminal, colors are
// only worth emitting when it is
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorDebug(colorOn bool) string {
	if colorOn {
		return blueBrightBold + "DEBU" + reset
	}
	return "DEBU"
}

func colorInfo(colorOn bool) string {
	if colorOn {
		return cyanBold + "INFO" + reset
	}
	return "INFO"
}

func colorWarn(colorOn bool) string {
	if colorOn {
		return yellowBrightBold + "WARN" + reset
	}
	return "WARN"
}

func colorError(colorOn bool) string {
	if colorOn {
		return redBold + "ERRO" + reset
	}
	return "ERRO"
}

func colorFatal(colorOn bool) string {
	if colorOn {
		return redBrightBold + "FATA" + reset
	}
	return "FATA"
}

func colorGreyOut(m string, colorOn bool) string {
	if colorOn {
		return greyBold + m + reset
	}
	return m
}
