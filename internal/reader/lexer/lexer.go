// Released under an MIT license. See LICENSE.

// Package lexer splits a command line into tokens.
package lexer

import (
	"github.com/anmitsu/go-shlex"
)

// Tokens is the ordered sequence of words on one command line.
type Tokens struct {
	words []string
}

// Tokenize splits line into words using POSIX shell quoting rules.
func Tokenize(line string) (*Tokens, error) {
	words, err := shlex.Split(line, true)
	if err != nil {
		return nil, err
	}

	return &Tokens{words: words}, nil
}

// Get returns the i-th token, or "" if there is none.
func (t *Tokens) Get(i int) string {
	if i < 0 || i >= len(t.words) {
		return ""
	}

	return t.words[i]
}

// Len returns the number of tokens.
func (t *Tokens) Len() int {
	return len(t.words)
}
