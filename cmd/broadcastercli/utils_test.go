package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestReadTransaction(t *testing.T) {
	hex, err := readTransaction(" 0200000001\n")
	require.NoError(t, err)
	require.Equal(t, "0200000001", hex)

	path := filepath.Join(t.TempDir(), "tx.hex")
	require.NoError(t, os.WriteFile(path, []byte("0200000001\n"), 0600))
	hex, err = readTransaction("@" + path)
	require.NoError(t, err)
	require.Equal(t, "0200000001", hex)

	_, err = readTransaction("@" + filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, "could not read transaction file")

	_, err = readTransaction("  ")
	require.Error(t, err)
}

func TestRequireNArgs(t *testing.T) {
	called := false
	action := requireNArgs(1, func(ctx *cli.Context) error {
		called = true
		return nil
	})

	newContext := func(args ...string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		require.NoError(t, set.Parse(args))
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		ctx.Command = &cli.Command{Name: "status"}
		return ctx
	}

	require.ErrorContains(t, action(newContext()), "requires 1 argument(s) but got 0")
	require.False(t, called)

	require.NoError(t, action(newContext("txid")))
	require.True(t, called)
}

func TestFormatRate(t *testing.T) {
	require.Equal(t, "2500 sat/kB (2.50 sat/vbyte)", formatRate(2500))
	require.Equal(t, []string{"a", "b"}, sortedKeys(map[string]int{"b": 1, "a": 2}))
}
