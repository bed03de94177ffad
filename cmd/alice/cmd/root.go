package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alicelang/go-alice/internal/interp"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	bench bool
	emit  string
)

var rootCmd = &cobra.Command{
	Use:   "alice [file]",
	Short: "alice language interpreter",
	Long: `go-alice is a Go implementation of alice, a small stack-oriented,
statically typed programming language.

Programs are a stream of words manipulating an operand stack. Every word
declares its stack effect, and a static checker verifies the whole
program by abstract interpretation before anything runs.

Run a source file by passing its path, or start the interactive shell by
passing nothing.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runShell()
		}
		err := runFile(args[0])
		var exitErr *interp.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		return err
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&bench, "bench", "b", false, "print per-stage timing to stdout")
	rootCmd.PersistentFlags().StringVarP(&emit, "emit", "e", "", "emit intermediate representation (reserved value: java)")
}
