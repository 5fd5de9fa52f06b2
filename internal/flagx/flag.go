// Package flagx holds helpers for strict command-line parsing.
package flagx

import (
	"flag"
	"fmt"
	"io"
)

// Parse parses args into fs without printing anything. Unknown flags,
// flags missing their value and positional arguments are errors; -h and
// -help yield flag.ErrHelp. Both -name and --name spellings are accepted.
func Parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return nil
}
