package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitInput    = 3
	exitProvider = 4
	exitModel    = 5
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "sitegen",
		Short:         "Generate and edit websites from plain-language descriptions",
		Long:          "sitegen turns a free-text description into a render-ready site document and applies plain-language edits to it.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to a YAML config file")
	pf.BoolVar(&g.verbose, "verbose", false, "Log processing steps to stderr")
	pf.BoolVar(&g.debug, "debug", false, "Dump redacted prompts to stderr; use only in trusted environments")

	root.AddCommand(
		newGenerateCmd(&g),
		newMutateCmd(&g),
		newAuditCmd(&g),
		newServeCmd(&g),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
