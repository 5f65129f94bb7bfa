package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"vscodeconfigurator/internal/clierror"
)

// ErrQuit is returned by AskForOverwrite when the user pressed "q".
// The caller is expected to stop immediately and exit with a non-zero status.
var ErrQuit = errors.New("quit requested by user")

// ANSI sequences for saving/restoring the cursor and clearing what follows.
const (
	saveCursor    = "\x1b7"
	restoreCursor = "\x1b8"
	clearBelow    = "\x1b[J"
)

// KeyReader reads single key presses from a terminal in raw mode.
type KeyReader interface {
	// MakeRaw switches the terminal to raw mode and returns a function that
	// restores the previous mode.
	MakeRaw() (restore func() error, err error)

	// ReadKey blocks until one byte of input is available.
	ReadKey() (byte, error)
}

// TerminalKeyReader reads keys from a terminal file such as os.Stdin.
type TerminalKeyReader struct {
	in *os.File
}

// NewTerminalKeyReader returns a KeyReader for the given terminal.
func NewTerminalKeyReader(in *os.File) *TerminalKeyReader {
	return &TerminalKeyReader{in: in}
}

// MakeRaw puts the terminal into raw mode.
func (r *TerminalKeyReader) MakeRaw() (func() error, error) {
	fd := int(r.in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("standard input is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// ReadKey reads a single byte.
func (r *TerminalKeyReader) ReadKey() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := r.in.Read(buf)
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// promptState is a state of the overwrite confirmation.
type promptState int

const (
	prompting promptState = iota
	confirmed
	declined
	quit
)

const ctrlC = 0x03

// nextPromptState maps a key press to the next state. Unknown keys keep the
// prompt in the prompting state.
func nextPromptState(key byte) promptState {
	switch key {
	case 'y', 'Y':
		return confirmed
	case 'n', 'N':
		return declined
	case 'q', 'Q', ctrlC:
		return quit
	default:
		return prompting
	}
}

// AskForOverwrite asks whether an existing file should be overwritten.
//
// It returns true when the user pressed "y" and false for "n". Any other key
// re-prompts. Pressing "q" (or Ctrl-C) returns ErrQuit. The terminal is
// always put back into cooked mode before returning.
func (c *Console) AskForOverwrite() (bool, error) {
	if !c.interactive || c.keys == nil {
		return false, clierror.New(clierror.PromptUnavailable,
			"Cannot ask for overwrite on a non-interactive terminal. Use --force to overwrite existing files.")
	}

	fmt.Fprint(c.out, saveCursor)
	c.printPrompt(false)

	restore, err := c.keys.MakeRaw()
	if err != nil {
		c.clearPrompt()
		return false, fmt.Errorf("failed to enable raw terminal mode: %w", err)
	}
	release := sync.OnceValue(restore)
	defer release()

	state := prompting
	for state == prompting {
		key, err := c.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return false, fmt.Errorf("failed to read key press: %w", err)
		}

		state = nextPromptState(key)
		if state == prompting {
			c.clearPrompt()
			fmt.Fprint(c.out, saveCursor)
			c.printPrompt(true)
		}
	}

	if state == quit {
		_ = release()
		errorColor.Fprintf(c.out, "\n\n%s Quitting...\n", Stop)
		return false, ErrQuit
	}

	c.clearPrompt()
	return state == confirmed, nil
}

func (c *Console) printPrompt(invalid bool) {
	if invalid {
		errorColor.Fprintf(c.out, "%s Invalid input. ", Stop)
	}
	warnColor.Fprintf(c.out, "%s Overwrite? ([y]es/[n]o/[q]uit) ", Hand)
}

func (c *Console) clearPrompt() {
	fmt.Fprint(c.out, restoreCursor+clearBelow)
}
