package prompt

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt is invoked without a terminal
// attached to stdin.
var ErrNotInteractive = errors.New("interactive prompt requires a terminal")

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
