package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/RowanDark/devkit/internal/config"
	"github.com/RowanDark/devkit/internal/logging"
	"github.com/RowanDark/devkit/internal/observability/tracing"
	"github.com/RowanDark/devkit/internal/toolerr"
)

const productName = "devkit"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every subcommand needs.
type app struct {
	ctx    context.Context
	cfg    config.Config
	logger *logging.AuditLogger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(productName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	switch rest[0] {
	case "version":
		fmt.Fprintln(stdout, versionString())
		return 0
	case "help":
		printUsage(stdout)
		return 0
	}

	cfg, src, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "open audit log: %v\n", err)
		return 1
	}
	defer logger.Close()
	_ = logger.Emit(logging.AuditEvent{
		EventType: logging.EventConfigLoaded,
		Metadata:  map[string]any{"files": src.Files},
	})

	shutdown, err := tracing.Setup(context.Background(), tracing.Config{
		FilePath:       cfg.Trace.File,
		ServiceName:    productName,
		ServiceVersion: version,
		SampleRatio:    cfg.Trace.SampleRatio,
	})
	if err != nil {
		fmt.Fprintf(stderr, "setup tracing: %v\n", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			fmt.Fprintf(stderr, "flush traces: %v\n", err)
		}
	}()

	ctx, span := otel.Tracer(productName).Start(context.Background(), productName+"."+rest[0])
	defer span.End()

	a := &app{ctx: ctx, cfg: cfg, logger: logger, stdin: stdin, stdout: stdout, stderr: stderr}
	code := a.dispatch(rest[0], rest[1:])
	span.SetAttributes(attribute.Int("devkit.exit_code", code))
	if code != 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("exit status %d", code))
	}
	return code
}

func (a *app) dispatch(command string, args []string) int {
	switch command {
	case "list":
		return a.runList(args)
	case "run":
		return a.runOperation(args)
	case "pipeline":
		return a.runPipeline(args)
	case "detect":
		return a.runDetect(args)
	case "schema":
		return a.runSchema(args)
	case "config":
		return a.runConfig(args)
	default:
		fmt.Fprintf(a.stderr, "unknown command: %s\n", command)
		printUsage(a.stderr)
		return 2
	}
}

func newLogger(cfg config.Config, stderr io.Writer) (*logging.AuditLogger, error) {
	if !cfg.Log.Enabled {
		return logging.Nop(), nil
	}
	if cfg.Log.File != "" {
		return logging.NewAuditLogger(productName, logging.WithoutStderr(), logging.WithFile(cfg.Log.File))
	}
	return logging.NewAuditLogger(productName, logging.WithoutStderr(), logging.WithWriter(stderr))
}

// fail reports err and returns the exit code for an operation failure.
func (a *app) fail(context string, err error) int {
	if kind := toolerr.KindOf(err); kind != "" {
		fmt.Fprintf(a.stderr, "%s: %v [%s]\n", context, err, kind)
	} else {
		fmt.Fprintf(a.stderr, "%s: %v\n", context, err)
	}
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, versionString())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	for _, line := range []string{
		"devkit list [-category c] [-json]",
		"devkit run <operation> [-p key=value]... [-file path] [-json] [input]",
		"devkit pipeline (-ops a,b,c | -recipe file) [-p step.key=value]... [-reverse] [-file path] [input]",
		"devkit detect [-decode] [-json] [-file path] [input]",
		"devkit schema <operation>",
		"devkit config print|env",
		"devkit version",
	} {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input is read from the argument, the -file path, or stdin, in that order.")
	fmt.Fprintf(w, "Configuration: ~/%s/%s, ./%s, %s* environment variables.\n",
		config.HomeDirName, config.HomeFileName, config.LocalFileName, config.EnvPrefix)
}

var version = "dev"

func versionString() string {
	return fmt.Sprintf("%s %s", productName, strings.TrimSpace(version))
}
