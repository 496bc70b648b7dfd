// Package ui formats human-facing output: notices, emphasized labels and errors.
package ui

import (
	"fmt"
	"io"

	fcolor "github.com/fatih/color"
)

// Printer writes styled lines to an output and an error stream.
type Printer struct {
	out   io.Writer
	errw  io.Writer
	bold  *fcolor.Color
	alert *fcolor.Color
}

// New creates a Printer. With useColor false all styling is off; otherwise
// styling follows fatih/color's terminal detection.
func New(out, errw io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:   out,
		errw:  errw,
		bold:  fcolor.New(fcolor.Bold),
		alert: fcolor.New(fcolor.Bold, fcolor.FgRed),
	}
	if !useColor {
		p.bold.DisableColor()
		p.alert.DisableColor()
	}
	return p
}

// Out returns the primary output stream.
func (p *Printer) Out() io.Writer { return p.out }

// Bold returns s emphasized.
func (p *Printer) Bold(s string) string {
	return p.bold.Sprint(s)
}

// Notice prints an emphasized line.
func (p *Printer) Notice(format string, args ...any) {
	fmt.Fprintln(p.out, p.bold.Sprintf(format, args...))
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Error prints err behind a bold red "Error:" label on the error stream.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.errw, "%s: %v\n", p.alert.Sprint("Error"), err)
}
