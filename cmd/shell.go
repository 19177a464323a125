package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/spf13/cobra"
)

const shellPrompt = "expense> "

var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Run commands one per line against a single loaded table, for example:

  add --date 2024-01-15 --amount 12.50 --category Food --description "Lunch with Sam"
  budget set Food 300
  summary

Budgets set in the session last until it ends. Type "exit" to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runShell(cmd.Context())
		},
	}
}

// runShell reads one command per line and runs it through a fresh command
// tree, so flag values never leak from one line into the next.
func (a *application) runShell(ctx context.Context) error {
	if _, err := a.dependencies(ctx); err != nil {
		return err
	}

	a.inShell = true
	defer func() { a.inShell = false }()

	fmt.Fprintln(a.out, `Expense Tracker shell. Type "help" for commands, "exit" to quit.`)

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		args, err := splitArgs(line)
		if err != nil {
			a.reportError(internal.NewValidationError(fmt.Sprintf("Could not parse input: %v.", err), internal.ErrCodeValidationFailed))
			continue
		}

		rootCmd := newRootCmd(a)
		rootCmd.SetArgs(args)
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			a.reportError(err)
		}
	}

	return scanner.Err()
}

// splitArgs breaks line into words. Single and double quotes group words and
// a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
