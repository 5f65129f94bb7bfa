package logger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"

	"vscodeconfigurator/internal/clierror"
)

var (
	bannerTitle = color.New(color.Bold, color.BgRed, color.FgWhite)
	bannerType  = color.New(color.Bold, color.FgRed, color.BgHiBlack)
	bannerKind  = color.New(color.Bold, color.FgRed, color.BgBlack)
)

// exitCoder is implemented by errors coming from external processes.
type exitCoder interface {
	ExitCode() int
}

// ClassifyError returns a human readable category for err and, when one is
// known, a more specific kind.
func ClassifyError(err error) (category string, kind string) {
	var (
		argErr     *clierror.ArgumentError
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		tomlErr    *toml.DecodeError
		pathErr    *fs.PathError
		processErr exitCoder
	)

	if errors.As(err, &argErr) {
		return "CLI Argument Parser error", ""
	}
	if k, ok := clierror.KindOf(err); ok {
		return "Internal error", k.String()
	}

	switch {
	case errors.As(err, &processErr):
		return "External process error", fmt.Sprintf("exit status %d", processErr.ExitCode())
	case errors.As(err, &syntaxErr):
		return "JSON parsing error", "Syntax error"
	case errors.As(err, &typeErr):
		return "JSON parsing error", "Data error"
	case errors.As(err, &tomlErr):
		return "TOML parsing error", ""
	case errors.As(err, &pathErr):
		return "I/O error", ioKind(pathErr)
	default:
		return "Unknown error", ""
	}
}

func ioKind(err *fs.PathError) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "entity not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, fs.ErrExist):
		return "entity already exists"
	default:
		return err.Op
	}
}

// WriteErrorExtended writes a structured error banner for err to the error
// stream.
func (c *Console) WriteErrorExtended(err error) {
	if err == nil {
		return
	}
	category, kind := ClassifyError(err)

	if !c.interactive {
		fmt.Fprintln(c.errOut)
		if kind != "" {
			c.Error("%s (Kind: %s): %v\n", category, kind, err)
		} else {
			c.Error("%s: %v\n", category, err)
		}
		return
	}

	fmt.Fprint(c.errOut, "\n\n")
	bannerTitle.Fprintf(c.errOut, "%s Error ", Siren)
	bannerType.Fprintf(c.errOut, " %s ", category)
	if kind != "" {
		bannerKind.Fprintf(c.errOut, " Kind: %s ", kind)
	}
	c.Error("\n\n%v\n", err)
}
