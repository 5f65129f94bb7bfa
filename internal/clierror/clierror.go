package clierror

import (
	"errors"
	"fmt"
)

// Kind classifies an internal error raised by the configurator itself, as
// opposed to I/O, JSON or external process failures bubbling up from below.
type Kind int

const (
	// UnknownError is the zero value and should not normally be produced.
	UnknownError Kind = iota

	// NoSubcommandProvided means the CLI was invoked without a sub-command.
	NoSubcommandProvided

	// UnableToParseSolutionName means no solution name was given and none
	// could be derived from the output directory.
	UnableToParseSolutionName

	// FilePathDoesNotExist means a required input file or directory is missing.
	FilePathDoesNotExist

	// UnsupportedOperatingSystem means the home directory could not be
	// determined for the current platform.
	UnsupportedOperatingSystem

	// OutputDirectoryDoesNotExist means a command that works on an existing
	// project was pointed at a directory that is not there.
	OutputDirectoryDoesNotExist

	// PromptUnavailable means an overwrite confirmation was needed but the
	// console is not attached to an interactive terminal.
	PromptUnavailable

	// InvalidDocument means a VS Code JSON document does not have the
	// shape the patcher expects.
	InvalidDocument
)

var kindNames = map[Kind]string{
	UnknownError:                "UnknownError",
	NoSubcommandProvided:        "NoSubcommandProvided",
	UnableToParseSolutionName:   "UnableToParseSolutionName",
	FilePathDoesNotExist:        "FilePathDoesNotExist",
	UnsupportedOperatingSystem:  "UnsupportedOperatingSystem",
	OutputDirectoryDoesNotExist: "OutputDirectoryDoesNotExist",
	PromptUnavailable:           "PromptUnavailable",
	InvalidDocument:             "InvalidDocument",
}

// String returns the name of the kind, e.g. "NoSubcommandProvided".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is an error produced by the configurator with a Kind attached.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an *Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an *Error with a formatted message.
func Newf(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.Kind, true
	}
	return UnknownError, false
}

// ArgumentError wraps a failure to parse the command line.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
