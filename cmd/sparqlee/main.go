// Command sparqlee is a thin demonstration CLI: it reads a JSON-encoded
// expression tree and solution mapping, evaluates them, and prints the
// resulting term or error. It exists to exercise the library end to end
// and to wire cobra + yaml.v3 the way the teacher ships cmd/eval.go
// alongside its library packages; it is not a query engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/config"
	"github.com/jacoscaz/sparqlee/logging"
	"github.com/jacoscaz/sparqlee/topdown"
)

type evalParams struct {
	configPath  string
	exprPath    string
	mappingPath string
}

func newRootCommand() *cobra.Command {
	params := evalParams{}

	root := &cobra.Command{
		Use:   "sparqlee",
		Short: "Evaluate a SPARQL expression tree against a solution mapping",
		Long:  "sparqlee reads a JSON-encoded expression and solution mapping and prints the evaluated term or error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, params)
		},
	}

	root.Flags().StringVar(&params.configPath, "config", "", "path to a YAML configuration file (optional)")
	root.Flags().StringVar(&params.exprPath, "expr", "", "path to a JSON-encoded expression (required)")
	root.Flags().StringVar(&params.mappingPath, "mapping", "", "path to a JSON-encoded solution mapping (optional)")
	_ = root.MarkFlagRequired("expr")

	return root
}

func runEval(cmd *cobra.Command, params evalParams) error {
	cfg := config.Default()
	if params.configPath != "" {
		raw, err := os.ReadFile(params.configPath)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		cfg, err = config.ParseConfig(raw)
		if err != nil {
			return err
		}
	}

	logger := newLogger(cfg)

	exprRaw, err := os.ReadFile(params.exprPath)
	if err != nil {
		return fmt.Errorf("reading expression: %w", err)
	}
	expr, err := ast.UnmarshalExpression(exprRaw)
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	mapping := ast.Mapping{}
	if params.mappingPath != "" {
		mappingRaw, err := os.ReadFile(params.mappingPath)
		if err != nil {
			return fmt.Errorf("reading mapping: %w", err)
		}
		var wire map[string]json.RawMessage
		if err := json.Unmarshal(mappingRaw, &wire); err != nil {
			return fmt.Errorf("parsing mapping: %w", err)
		}
		for name, raw := range wire {
			var t ast.Term
			if err := json.Unmarshal(raw, &t); err != nil {
				return fmt.Errorf("parsing mapping entry %q: %w", name, err)
			}
			mapping[name] = t
		}
	}

	hooks := topdown.Hooks{
		ResolveIRI: func(_, relative string) (string, error) {
			if cfg.BaseIRI == "" {
				return relative, nil
			}
			return cfg.BaseIRI + relative, nil
		},
	}
	evaluator := topdown.NewEvaluator(hooks, topdown.WithLogger(logger))

	ctx := context.Background()
	if cfg.EvaluationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.EvaluationTimeout)
		defer cancel()
	}

	result, err := evaluator.Evaluate(ctx, expr, mapping)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}

func newLogger(cfg *config.Config) logging.Logger {
	var level logging.Level
	switch cfg.LogLevel {
	case "debug":
		level = logging.Debug
	case "warn":
		level = logging.Warn
	case "error":
		level = logging.Error
	default:
		level = logging.Info
	}
	format := logging.FormatJSON
	if cfg.LogFormat == "text" {
		format = logging.FormatText
	}
	return logging.New(level, format)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
