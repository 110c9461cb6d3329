// Released under an MIT license. See LICENSE.

// Package command builds an external command from a command line.
package command

// Operator tokens.
const (
	Background = "&"
	Input      = "<"
	Output     = ">"
)

// Sequence is an indexable sequence of tokens.
type Sequence interface {
	Get(i int) string
	Len() int
}

// T (command) is an external command: program, arguments, redirections
// and background flag. It does not change once built.
type T struct {
	argv       []string
	background bool
	input      string
	output     string
}

// New scans s left to right. A redirection operator takes the next token,
// whatever it is, as its operand. The background marker ends the scan;
// anything after it, including a redirection operator still waiting for
// its operand, is discarded.
func New(s Sequence) *T {
	c := &T{}

	pending := ""

	for i := 0; i < s.Len(); i++ {
		token := s.Get(i)

		switch {
		case pending == Output:
			c.output = token
			pending = ""

		case pending == Input:
			c.input = token
			pending = ""

		case token == Input, token == Output:
			pending = token

		case token == Background:
			c.background = true

			return c

		default:
			c.argv = append(c.argv, token)
		}
	}

	return c
}

// Argv returns the program name followed by its arguments.
func (c *T) Argv() []string {
	argv := make([]string, len(c.argv))
	copy(argv, c.argv)

	return argv
}

// Background reports whether the command runs in the background.
func (c *T) Background() bool {
	return c.background
}

// Input returns the input redirection target, or "".
func (c *T) Input() string {
	return c.input
}

// Name returns the program name, or "" if the line has no arguments.
func (c *T) Name() string {
	if len(c.argv) == 0 {
		return ""
	}

	return c.argv[0]
}

// Output returns the output redirection target, or "".
func (c *T) Output() string {
	return c.output
}
