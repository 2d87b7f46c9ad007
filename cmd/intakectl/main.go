package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/webmcpsetup/internal/intake"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

const usage = `usage: intakectl [-url URL] [-timeout D] <command> [payload.json|-]

commands:
  schema     print the intake form schema
  validate   dry-run a payload against the validation rules
  submit     submit a payload and print the agent-facing result
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "intakectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("intakectl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	baseURL := fs.String("url", envOr("INTAKE_API_URL", "http://localhost:8080"), "server base URL")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := intake.NewHTTPClient(*baseURL, *timeout)
	switch fs.Arg(0) {
	case "schema":
		schema, err := client.Schema(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, schema)
	case "validate":
		payload, err := readPayload(fs.Arg(1), stdin)
		if err != nil {
			return err
		}
		res, err := client.Validate(ctx, payload)
		if err != nil {
			return err
		}
		return printJSON(stdout, res)
	case "submit":
		payload, err := readPayload(fs.Arg(1), stdin)
		if err != nil {
			return err
		}
		adapter := intake.NewAdapter(client, logging.New("error"))
		res := adapter.Submit(ctx, intake.ChannelAgent, payload)
		if err := printJSON(stdout, res.Agent); err != nil {
			return err
		}
		if !res.Agent.Success {
			return errors.New(res.Agent.Message)
		}
		return nil
	default:
		return errUsage
	}
}

func readPayload(path string, stdin io.Reader) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	switch path {
	case "", "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	payload, err := intake.ParsePayload(raw)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
