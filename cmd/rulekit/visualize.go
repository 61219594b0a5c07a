package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/715d/rulekit/pkg/markup"
	"github.com/715d/rulekit/pkg/syntaxviz"
)

func newVisualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize <file.go>",
		Short: "Print the syntax tree of a Go file",
		Long: `visualize strips test markup from the file, parses it and prints one line per
syntax tree node: the node type indented by depth, its kind and its source text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := visualizeFile(args[0])
			if err != nil {
				return errWithCode(err, exitError)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report)
			return err
		},
	}
}

// visualizeFile renders the syntax tree of the markup-free content of path.
// Syntax errors are logged and the partial tree is rendered.
func visualizeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	text, err := markup.Strip(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, text, parser.ParseComments|parser.SkipObjectResolution)
	if file == nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	if err != nil {
		slog.Warn("source has syntax errors", "file", path, "error", err)
	}
	return syntaxviz.Visualize(fset, []byte(text), file), nil
}
