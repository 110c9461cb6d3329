package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/michaelmacinnis/tish/internal/engine/command"
	"github.com/michaelmacinnis/tish/internal/system/cache"
	"github.com/stretchr/testify/assert"
)

type recorder [][]string

func (r *recorder) Evaluate(s command.Sequence) int {
	words := []string{}
	for i := 0; i < s.Len(); i++ {
		words = append(words, s.Get(i))
	}

	*r = append(*r, words)

	return 0
}

func TestPrompt(t *testing.T) {
	u := New(strings.NewReader("pwd\n\n   \ncd /tmp\n"), &bytes.Buffer{})

	assert.Equal(t, "0: ", u.prompt())

	u.Run(&recorder{})

	assert.Equal(t, "4: ", u.prompt())
}

func TestRun(t *testing.T) {
	r := &recorder{}

	New(strings.NewReader("pwd\ncd /tmp\r\n\nsleep 5 &\nlast"), &bytes.Buffer{}).Run(r)

	assert.Equal(t, recorder{
		{"pwd"},
		{"cd", "/tmp"},
		{"sleep", "5", "&"},
		{"last"},
	}, *r)
}

func TestTokenizerError(t *testing.T) {
	color.NoColor = true

	r := &recorder{}
	errs := &bytes.Buffer{}

	New(strings.NewReader("echo \"oops\npwd\n"), errs).Run(r)

	assert.True(t, strings.HasPrefix(errs.String(), "tish: "))
	assert.Equal(t, recorder{{"pwd"}}, *r)
}

func TestClose(t *testing.T) {
	assert.NoError(t, New(strings.NewReader(""), &bytes.Buffer{}).Close())
}

func TestCompleter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sleep", "sort", "cat"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
	}

	t.Setenv("PATH", dir)

	complete := Completer([]string{"?", "exit", "cd", "pwd", "wait", "jobs"}, cache.New())

	head, cs, tail := complete("s", 1)
	assert.Equal(t, "", head)
	assert.Equal(t, []string{"sleep", "sort"}, cs)
	assert.Equal(t, "", tail)

	_, cs, _ = complete("c", 1)
	assert.Equal(t, []string{"cd", "cat"}, cs)

	_, cs, tail = complete("w > out", 1)
	assert.Equal(t, []string{"wait"}, cs)
	assert.Equal(t, " > out", tail)

	head, cs, _ = complete("cat s", 5)
	assert.Equal(t, "cat s", head)
	assert.Empty(t, cs)
}
