package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickit/pkg/commands"
)

type memTheme struct{ dark bool }

func (m *memTheme) Get() bool             { return m.dark }
func (m *memTheme) Set(dark bool) error   { m.dark = dark; return nil }
func (m *memTheme) Toggle() (bool, error) { m.dark = !m.dark; return m.dark, nil }

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]string{"-add", "Water plants", "-date", "2025-07-01", "-priority", "high", "-verbose"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Water plants", args.AddTask)
	assert.Equal(t, "2025-07-01", args.DateFlag)
	assert.Equal(t, "high", args.PriorityFlag)
	assert.True(t, args.Verbose)
	assert.Equal(t, "json", args.TypeFlag)
	assert.Equal(t, "all", args.FilterFlag)
}

func TestParseArgsRejectsStrays(t *testing.T) {
	_, err := ParseArgs([]string{"-list", "extra"}, io.Discard)
	assert.Error(t, err)

	_, err = ParseArgs([]string{"-nope"}, io.Discard)
	assert.Error(t, err)
}

func TestNoCommandStartsTUI(t *testing.T) {
	args, err := ParseArgs([]string{"-config", "/tmp/tickit.json"}, io.Discard)
	require.NoError(t, err)

	handled, err := HandleCommands(context.Background(), &commands.Env{}, args)
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestRegisterNeedsUserAndEmail(t *testing.T) {
	args, err := ParseArgs([]string{"-register", "-user", "ada"}, io.Discard)
	require.NoError(t, err)

	handled, err := HandleCommands(context.Background(), &commands.Env{}, args)
	assert.True(t, handled)
	assert.Error(t, err)
}

func TestThemeDispatch(t *testing.T) {
	out := &bytes.Buffer{}
	env := &commands.Env{Theme: &memTheme{}, Out: out}

	args, err := ParseArgs([]string{"-theme", "dark"}, io.Discard)
	require.NoError(t, err)
	handled, err := HandleCommands(context.Background(), env, args)
	require.NoError(t, err)
	assert.True(t, handled)

	args, err = ParseArgs([]string{"-theme", "show"}, io.Discard)
	require.NoError(t, err)
	_, err = HandleCommands(context.Background(), env, args)
	require.NoError(t, err)
	assert.Equal(t, "Theme: dark\nTheme: dark\n", out.String())
}
