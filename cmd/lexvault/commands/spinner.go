package commands

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	okMark   = color.GreenString("✓")
	failMark = color.RedString("✗")
)

// startSpinner shows message while work runs and returns a function that
// stops it and prints final. No spinner is drawn in verbose mode.
func startSpinner(message string) func(final string) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		logger.Infof("%s", message)
	}
	return func(final string) {
		if quiet {
			s.Stop()
		}
		if final != "" {
			fmt.Println(final)
		}
	}
}
