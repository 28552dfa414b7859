// Command promptctl renders the prompt the relay would send for a query and a
// context file, without calling the provider.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/assistant-relay/internal/application/prompt"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/tokens"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "promptctl",
		Short:         "Inspect prompts built by the assistant relay",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "promptctl version %s\n", version)
		},
	})
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		query       string
		contextPath string
		asJSON      bool
		showTokens  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the system and user messages for a query",
		Example: `  promptctl render --query "summarize my week" --context context.json
  cat context.json | promptctl render -q "what is left?" -c - --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readBundle(cmd.InOrStdin(), contextPath)
			if err != nil {
				return err
			}

			messages := prompt.Build(query, bundle)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(messages); err != nil {
					return err
				}
			} else {
				for _, m := range messages {
					fmt.Fprintf(out, "--- %s ---\n%s\n\n", m.Role, m.Content)
				}
			}

			if showTokens {
				counter := tokens.NewCounter(tokens.DefaultEncoding)
				fmt.Fprintf(cmd.ErrOrStderr(), "prompt tokens: %d (exact: %t)\n", counter.CountMessages(messages), counter.Exact())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "user query (required)")
	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "context JSON file with todos, plans and notes; - reads stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print messages as JSON")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "print the estimated prompt token count to stderr")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func readBundle(stdin io.Reader, path string) (workspace.Bundle, error) {
	var bundle workspace.Bundle
	if path == "" {
		return bundle, nil
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return bundle, fmt.Errorf("open context file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return bundle, fmt.Errorf("decode context: %w", err)
	}
	return bundle, nil
}
