package culator

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// NewConsoleLogger creates a logger that writes diagnostics to w in the
// form "WARNING: message" or "ERROR: message", followed by any fields.
// If colored is true, the labels are highlighted with ANSI colors.
func NewConsoleLogger(w io.Writer, colored bool) zerolog.Logger {
	warn := color.New(color.FgYellow, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	if colored {
		warn.EnableColor()
		fail.EnableColor()
	} else {
		warn.DisableColor()
		fail.DisableColor()
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !colored,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			switch fmt.Sprint(i) {
			case zerolog.LevelWarnValue:
				return warn.Sprint("WARNING:")
			case zerolog.LevelErrorValue:
				return fail.Sprint("ERROR:")
			default:
				return strings.ToUpper(fmt.Sprint(i)) + ":"
			}
		},
	}
	return zerolog.New(cw).Level(zerolog.WarnLevel)
}
