package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/logger"
	"github.com/dmitrymomot/validation/pkg/report"
)

func validateCmd(s Settings) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Evaluate the checks of a check file and print a report",
		Description: `Each check names a value and the constraints it must satisfy:

  checks:
    - name: username
      path: user.name
      value: jo
      constraints:
        - kind: size
          attributes: {min: 3, max: 16}
        - kind: pattern
          attributes: {regexp: "[a-z]+"}
    - name: expiry
      type: time
      value: "2030-01-01T00:00:00Z"
      constraints:
        - kind: future

Supported value types: string, int, uint, float, bool, time (RFC 3339), null.
Without a type the value is used as decoded from YAML.

A check that cannot be evaluated, for example because no validator accepts
its value, is reported with status "error" and the remaining checks still run.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "path to the YAML check file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   s.OutputFormat,
				Usage:   "report format (json, yaml, text)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the report to this file instead of stdout",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: s.Concurrency,
				Usage: "maximum number of checks evaluated at once",
			},
			&cli.IntFlag{
				Name:  "cache-size",
				Value: s.CacheSize,
				Usage: "maximum number of initialized validators kept in memory",
			},
			&cli.StringFlag{
				Name:  "messages",
				Usage: "YAML message bundle overriding the default messages",
			},
			&cli.BoolFlag{
				Name:  "fail-on-violation",
				Usage: "exit with non-zero status if any check fails or errors",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := report.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			file, err := loadChecksFile(cmd.String("file"))
			if err != nil {
				return err
			}
			checks, err := file.compile()
			if err != nil {
				return err
			}

			opts := []validation.Option{
				validation.WithLogger(log),
				validation.WithCacheSize(cmd.Int("cache-size")),
			}
			if name := cmd.String("messages"); name != "" {
				bundle, err := loadMessages(name)
				if err != nil {
					return err
				}
				opts = append(opts, validation.WithMessages(bundle))
			}
			engine, err := validation.New(opts...)
			if err != nil {
				return err
			}

			start := time.Now()
			r, err := evaluate(ctx, engine, checks, cmd.Int("concurrency"), log)
			if err != nil {
				return err
			}
			log.Info("checks evaluated",
				slog.Int("checks", r.Summary.Checks),
				slog.Int("failed", r.Summary.Failed),
				slog.Int("errored", r.Summary.Errored),
				logger.Duration(time.Since(start)),
			)

			if err := writeReport(cmd, cmd.String("output"), format, r); err != nil {
				return err
			}
			if cmd.Bool("fail-on-violation") && r.Failed() {
				return fmt.Errorf("%w: %d failed, %d errored", ErrChecksFailed, r.Summary.Failed, r.Summary.Errored)
			}
			return nil
		},
	}
}

// evaluate runs every declaration of every check. Results keep the order of
// the check file regardless of concurrency.
func evaluate(ctx context.Context, engine *constraint.Engine, checks []compiledCheck, concurrency int, log *slog.Logger) (*report.Report, error) {
	results := make([][]report.Result, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, c := range checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateCheck(engine, c, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}

	r := report.New()
	for _, rs := range results {
		r.Add(rs...)
	}
	return r, nil
}

func evaluateCheck(engine *constraint.Engine, c compiledCheck, log *slog.Logger) []report.Result {
	out := make([]report.Result, 0, len(c.decls))
	for _, decl := range c.decls {
		vs, err := engine.Validate(c.value, decl, constraint.WithRootBean(c.value))
		if err != nil {
			log.Warn("check could not be evaluated",
				logger.Check(c.name),
				logger.Constraint(decl.Kind),
				logger.Error(err),
			)
		}
		out = append(out, report.NewResult(c.name, c.path, decl.Kind, vs, err))
	}
	return out
}

func loadMessages(name string) (map[string]string, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read message bundle %q: %w", name, err)
	}
	var bundle map[string]string
	if err := yaml.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse message bundle %q: %w", name, err)
	}
	return bundle, nil
}

func writeReport(cmd *cli.Command, output string, format report.Format, r *report.Report) error {
	var w io.Writer = outWriter(cmd)
	if output != "" {
		fh, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", output, err)
		}
		defer fh.Close()
		w = fh
	}
	if err := report.Write(w, format, r); err != nil {
		return err
	}
	return nil
}
