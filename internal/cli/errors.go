package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrUsage marks errors caused by how a command was invoked.
var ErrUsage = errors.New("usage error")

// UsageError carries the usage line of the command that was misused.
type UsageError struct {
	UseLine string
	Details []string
}

func (e *UsageError) Error() string {
	lines := append([]string{"Usage: " + e.UseLine}, e.Details...)
	return strings.Join(lines, "\n")
}

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func usageError(cmd *cobra.Command, details ...string) error {
	return &UsageError{UseLine: cmd.UseLine(), Details: details}
}

// rangeArgs accepts between lo and hi positional arguments.
func rangeArgs(lo, hi int, details ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return usageError(cmd, details...)
		}
		return nil
	}
}

// Diagnostic renders err the way it is reported on stderr. Usage errors are
// printed as-is; everything else gets an "Error: " prefix.
func Diagnostic(err error) string {
	if errors.Is(err, ErrUsage) {
		return err.Error()
	}
	return "Error: " + err.Error()
}

// Execute runs cmd and reports any failure on its error stream. It returns the
// process exit code.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		PrintError(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// PrintError writes the diagnostic for err to w. It is red only when w is a
// terminal and color output is not otherwise disabled (NO_COLOR).
func PrintError(w io.Writer, err error) {
	c := color.New(color.FgRed)
	if !isTerminal(w) {
		c.DisableColor()
	}
	_, _ = c.Fprintln(w, Diagnostic(err))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func silence(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(c, err.Error())
	})
}
