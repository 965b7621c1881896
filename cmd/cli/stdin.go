package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// errNoInput is returned when there are no file arguments and stdin is a terminal
var errNoInput = errors.New("no input: pass a file or pipe JSON on stdin")

type input struct {
	name   string
	reader io.Reader
	closer io.Closer
}

type inputList []input

// Close closes every opened file
func (l inputList) Close() {
	for _, in := range l {
		if in.closer != nil {
			in.closer.Close()
		}
	}
}

// hasStdinInput checks if data is available from stdin (pipe or redirect)
func hasStdinInput(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// openInputs opens the named files, or stdin when there are none
func openInputs(cmd *cobra.Command, args []string) (inputList, error) {
	stdin := cmd.InOrStdin()
	if len(args) == 0 {
		if !hasStdinInput(stdin) {
			return nil, errNoInput
		}
		return inputList{{name: "stdin", reader: stdin}}, nil
	}

	var inputs inputList
	for _, name := range args {
		if name == "-" {
			inputs = append(inputs, input{name: "stdin", reader: stdin})
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			inputs.Close()
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		inputs = append(inputs, input{name: name, reader: f, closer: f})
	}
	return inputs, nil
}
