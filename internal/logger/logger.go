package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color" // For colored console output
	"golang.org/x/term"
)

// Emoji is a decoration printed in front of console lines when the output is
// an interactive terminal.
type Emoji string

const (
	Rocket       Emoji = "🚀"
	Document     Emoji = "📄"
	CheckMark    Emoji = "✅"
	OrangeCircle Emoji = "🟠"
	Folder       Emoji = "📁"
	Package      Emoji = "📦"
	Party        Emoji = "🥳"
	Hand         Emoji = "✋"
	Stop         Emoji = "🛑"
	Siren        Emoji = "🚨"
)

// Colorized printers for the different levels.
// Cyan is used for regular progress, green for success, yellow for warnings
// and red for errors.
var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	debugColor   = color.New(color.FgHiBlack)
)

// Console writes categorized status lines for a single command invocation.
//
// It has two rendering modes. When attached to an interactive terminal the
// output is colored and decorated with emoji; otherwise every line is
// prefixed with its level ("[Info] - ", "[Warning] - ", ...) so logs stay
// readable when piped to a file.
type Console struct {
	out         io.Writer
	errOut      io.Writer
	keys        KeyReader
	interactive bool
	debug       bool
}

// Options configures a Console. Zero values fall back to the process'
// standard streams.
type Options struct {
	Out         io.Writer
	ErrOut      io.Writer
	Keys        KeyReader
	Interactive bool
	Debug       bool
}

// New creates a Console bound to os.Stdout/os.Stderr.
// The decorated mode is chosen when stdout is a terminal.
func New(debug bool) *Console {
	return &Console{
		out:         os.Stdout,
		errOut:      os.Stderr,
		keys:        NewTerminalKeyReader(os.Stdin),
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
		debug:       debug,
	}
}

// NewWithOptions creates a Console from explicit options.
func NewWithOptions(opts Options) *Console {
	c := &Console{
		out:         opts.Out,
		errOut:      opts.ErrOut,
		keys:        opts.Keys,
		interactive: opts.Interactive,
		debug:       opts.Debug,
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.errOut == nil {
		c.errOut = os.Stderr
	}
	return c
}

// Info writes an informational message.
func (c *Console) Info(format string, a ...any) {
	c.write(c.out, infoColor, "[Info] - ", format, a...)
}

// Success writes a success message. Success text is never prefixed since it
// always completes a line started by Operation.
func (c *Console) Success(format string, a ...any) {
	c.write(c.out, successColor, "", format, a...)
}

// Warning writes a warning message.
func (c *Console) Warning(format string, a ...any) {
	c.write(c.out, warnColor, "[Warning] - ", format, a...)
}

// Error writes an error message to the error stream.
func (c *Console) Error(format string, a ...any) {
	c.write(c.errOut, errorColor, "[Error] - ", format, a...)
}

// Debug writes a debug message if debug output is enabled.
func (c *Console) Debug(format string, a ...any) {
	if !c.debug {
		return
	}
	c.write(c.out, debugColor, "[Debug] - ", format, a...)
}

func (c *Console) write(w io.Writer, col *color.Color, plainPrefix, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !c.interactive {
		fmt.Fprint(w, plainPrefix+msg)
		return
	}
	col.Fprint(w, msg)
}

// Newline writes an empty line.
func (c *Console) Newline() {
	fmt.Fprintln(c.out)
}

// Category writes an operation category header, e.g. "🚀 Git".
func (c *Console) Category(name string) {
	if !c.interactive {
		c.Info("%s\n", name)
		return
	}
	c.Info("%s %s\n", Rocket, name)
}

// Operation starts an operation line: "- 📄 Copying 'x'... ".
// It is completed by OperationDone or AlreadyExists.
func (c *Console) Operation(label string, emoji Emoji) {
	if !c.interactive {
		c.Info("- %s ", label)
		return
	}
	c.Info("- %s %s ", emoji, label)
}

// OperationDone completes an operation line.
func (c *Console) OperationDone() {
	if !c.interactive {
		c.Success("Done!\n")
		return
	}
	c.Success("Done! %s\n", CheckMark)
}

// AlreadyExists completes an operation line whose target was left untouched.
func (c *Console) AlreadyExists() {
	if !c.interactive {
		c.Warning("Already exists\n")
		return
	}
	c.Warning("Already exists %s\n", OrangeCircle)
}

// ProjectInitialized writes the final line of an init command.
func (c *Console) ProjectInitialized() {
	if !c.interactive {
		c.Info("VSCode project initialized!\n")
		return
	}
	c.Info("%s VSCode project initialized!\n", Party)
}

// Release flushes the underlying streams if they support it.
func (c *Console) Release() {
	for _, w := range []io.Writer{c.out, c.errOut} {
		if f, ok := w.(interface{ Sync() error }); ok {
			_ = f.Sync()
		}
	}
}
