package cmd

import (
	"bufio"
	goerrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alicelang/go-alice/internal/interp"
	"github.com/alicelang/go-alice/internal/lexer"
	"github.com/alicelang/go-alice/internal/parser"
	"github.com/alicelang/go-alice/internal/types"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell",
	Long: `Start the read-eval-print shell. Each line is lexed, parsed and type
checked against a persistent checker state mirroring the persistent
operand stack, then executed. Errors leave the session running.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runShell()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runShell drives the interactive session. The operand stack, variable
// table and the checker's TypeStack all live across lines; a failed
// type check rebuilds the TypeStack from the concrete stack so one bad
// line cannot poison the session.
func runShell() error {
	ip := interp.New(os.Stdout)
	ts := types.NewTypeStack()

	fmt.Println("interactive alice")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("alice>>")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, err := lexer.New(line, "<interactive>").Tokenize()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		statements, err := parser.New(tokens).ParseInteractive(ts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing input: %v\n", err)
			resyncTypeStack(ts, ip.Stack)
			continue
		}

		for _, s := range statements {
			if err := s.Execute(ip); err != nil {
				var exitErr *interp.ExitError
				if goerrors.As(err, &exitErr) {
					os.Exit(exitErr.Code)
				}
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				resyncTypeStack(ts, ip.Stack)
				break
			}
		}
	}
}

// resyncTypeStack rebuilds the abstract stack from the concrete one
// after an error, so checker state and runtime state agree again.
func resyncTypeStack(ts *types.TypeStack, stack *interp.Stack) {
	ts.Vals = ts.Vals[:0]
	for _, v := range stack.Values() {
		ts.Vals = append(ts.Vals, v.Type())
	}
}
