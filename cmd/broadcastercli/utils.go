package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

func printJson(resp any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(resp); err != nil {
		fmt.Println("Could not encode response: " + err.Error())
	}
}

func requireNArgs(n int, action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() != n {
			return fmt.Errorf("command %s requires %d argument(s) but got %d", ctx.Command.Name, n, ctx.NArg())
		}
		return action(ctx)
	}
}

// readTransaction returns the argument itself or the content of the file if the argument starts with @
func readTransaction(arg string) (string, error) {
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("could not read transaction file: %w", err)
		}
		arg = string(raw)
	}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("transaction is empty")
	}
	return arg, nil
}

func sortedKeys[T any](values map[string]T) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.0f sat/kB (%.2f sat/vbyte)", rate, rate/1000)
}
