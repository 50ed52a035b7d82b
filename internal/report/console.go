package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	stepColor    = color.New(color.FgCyan)
	doneColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	detailsColor = color.New(color.FgHiBlack)
)

// Console writes progress and results for a single run. Success output goes
// to Out; everything else goes to Err so that stdout carries only the box.
type Console struct {
	Out io.Writer
	Err io.Writer

	printer *message.Printer
}

// NewConsole returns a Console. Nil writers default to os.Stdout/os.Stderr.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{Out: out, Err: errOut, printer: message.NewPrinter(language.English)}
}

// Step announces a step that is starting.
func (c *Console) Step(title string) {
	fmt.Fprintf(c.Err, "%s %s\n", stepColor.Sprint("-"), title)
}

// Succeed marks a step as finished.
func (c *Console) Succeed(title string) {
	fmt.Fprintf(c.Err, "%s %s\n", doneColor.Sprint("✔"), title)
}

// Fail marks a step as failed.
func (c *Console) Fail(title string) {
	fmt.Fprintf(c.Err, "%s %s\n", errorColor.Sprint("✖"), title)
}

// Files summarizes how many files were written into dir.
func (c *Console) Files(n int, dir string) {
	msg := c.printer.Sprintf("  %d files written to %s", n, dir)
	if n == 1 {
		msg = c.printer.Sprintf("  1 file written to %s", dir)
	}
	fmt.Fprintln(c.Err, detailsColor.Sprint(msg))
}

// Warn prints a non-fatal problem.
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.Err, warnColor.Sprint("warning: ")+msg)
}

// Error prints a fatal problem.
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.Err, errorColor.Sprint(msg))
}

// Success prints the boxed success message.
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.Out, Box(msg))
}
