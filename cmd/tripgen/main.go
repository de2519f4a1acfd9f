// README: tripgen CLI; renders prompts, runs the plan pipeline, and checks saved model output.
//
// Usage:
//
//	tripgen prompt   --request req.json [--lang ja]
//	tripgen plan     --request req.json [--lang ja]
//	tripgen validate --output raw.txt --duration "1 night 2 days"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"tripplan/internal/ai"
	"tripplan/internal/config"
	"tripplan/internal/modules/plan"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tripgen",
		Usage: "Generate and check travel plans from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Value:   "en",
				Usage:   "Prompt and message language (en, ja)",
				EnvVars: []string{"TRIPPLAN_LANG"},
			},
		},
		Commands: []*cli.Command{
			promptCommand(),
			planCommand(),
			validateCommand(),
		},
	}
}

func requestFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "request",
		Aliases:  []string{"r"},
		Usage:    "Path to a travel request JSON file (- for stdin)",
		Required: true,
	}
}

func promptCommand() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Print the generation prompt for a request",
		Flags: []cli.Flag{requestFlag()},
		Action: func(c *cli.Context) error {
			req, err := readRequest(c)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, plan.BuildPrompt(req, plan.ParseLanguage(c.String("lang"))))
			return err
		},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:   "plan",
		Usage:  "Run the full pipeline against the configured backend",
		Flags:  []cli.Flag{requestFlag()},
		Action: runPlan,
	}
}

func runPlan(c *cli.Context) error {
	req, err := readRequest(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).With().Timestamp().Logger()
	lang := plan.ParseLanguage(c.String("lang"))

	ctx := context.Background()
	var (
		gen      plan.Generator
		provider = cfg.AI.Provider
	)
	if cfg.AI.APIKey() != "" {
		p, err := ai.New(ctx, cfg.AI.Settings())
		if err != nil {
			return fmt.Errorf("generation backend: %w", err)
		}
		defer p.Close()
		gen, provider = p, p.Name()
	}

	svc := plan.NewService(gen, plan.Options{
		Credential: cfg.AI.APIKey(),
		Provider:   provider,
		Language:   lang,
		Logger:     logger,
	})
	res, err := svc.Generate(ctx, req)
	if err != nil {
		return errors.New(plan.UserMessage(plan.Classify(err), lang))
	}
	return writeIndented(c.App.Writer, res)
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Sanitize and validate saved model output",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Path to the raw model output (- for stdin)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Duration label the plan must match (e.g. \"2 days\")",
			},
		},
		Action: func(c *cli.Context) error {
			raw, err := readInput(c, c.String("output"))
			if err != nil {
				return err
			}
			res, err := plan.Validate(ai.Sanitize(string(raw)), plan.ParseDuration(c.String("duration")))
			if err != nil {
				var pe *plan.Error
				if errors.As(err, &pe) {
					for _, f := range pe.Fields {
						fmt.Fprintf(c.App.ErrWriter, "  %s\n", f)
					}
				}
				return err
			}
			return writeIndented(c.App.Writer, res)
		},
	}
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(path)
}

func readRequest(c *cli.Context) (plan.TravelRequest, error) {
	var req plan.TravelRequest
	b, err := readInput(c, c.String("request"))
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("parse request: %w", err)
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		return req, fmt.Errorf("request is missing %v", missing)
	}
	return req.Normalize(), nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
