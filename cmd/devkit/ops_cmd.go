package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/RowanDark/devkit/internal/config"
	"github.com/RowanDark/devkit/internal/logging"
	"github.com/RowanDark/devkit/internal/toolerr"
	"github.com/RowanDark/devkit/internal/toolkit"
)

// paramFlag collects repeated -p key=value flags.
type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	p[key] = value
	return nil
}

func (a *app) runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	category := fs.String("category", "", "Only list operations in this category")
	asJSON := fs.Bool("json", a.cfg.Output.JSON, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(a.stderr, "list takes no arguments")
		return 2
	}

	ops := toolkit.ListOperations()
	if *category != "" {
		ops = toolkit.ListOperationsByCategory(toolkit.Category(strings.ToLower(*category)))
		if len(ops) == 0 {
			fmt.Fprintf(a.stderr, "unknown category: %s\n", *category)
			return 2
		}
	}

	if *asJSON {
		type entry struct {
			Name        string           `json:"name"`
			Category    toolkit.Category `json:"category"`
			Description string           `json:"description"`
			Reverse     string           `json:"reverse,omitempty"`
		}
		entries := make([]entry, 0, len(ops))
		for _, op := range ops {
			e := entry{Name: op.Name(), Category: op.Category(), Description: op.Description()}
			if rev, ok := op.Reverse(); ok {
				e.Reverse = rev.Name()
			}
			entries = append(entries, e)
		}
		return a.writeJSON(entries)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Name(), op.Category(), op.Description())
	}
	if err := tw.Flush(); err != nil {
		return a.fail("list", err)
	}
	return 0
}

func (a *app) runOperation(args []string) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintln(a.stderr, "operation name required")
		return 2
	}
	name := args[0]
	op, ok := toolkit.GetOperation(name)
	if !ok {
		fmt.Fprintf(a.stderr, "unknown operation: %s\n", name)
		return 2
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	params := paramFlag{}
	fs.Var(params, "p", "Operation parameter as key=value (repeatable)")
	file := fs.String("file", "", "Read input from this file")
	asJSON := fs.Bool("json", a.cfg.Output.JSON, "Wrap the result in a JSON envelope")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(a.stderr, "at most one input argument is allowed")
		return 2
	}

	input, err := a.readInput(fs.Args(), *file, op.Category() != toolkit.CategoryGenerate)
	if err != nil {
		return a.fail(name, err)
	}

	merged := operationDefaults(a.cfg, name)
	for k, v := range params {
		merged[k] = v
	}

	start := time.Now()
	out, err := op.Execute(a.ctx, input, merged)
	a.audit(name, logging.EventOperationRun, start, err, map[string]any{
		"params":       paramMetadata(merged),
		"input_bytes":  len(input),
		"output_bytes": len(out),
	})
	if err != nil {
		return a.fail(name, err)
	}
	return a.writeResult(name, out, *asJSON)
}

func (a *app) runPipeline(args []string) int {
	fs := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	opsList := fs.String("ops", "", "Comma-separated operation names")
	recipe := fs.String("recipe", "", "JSON file describing the pipeline")
	params := paramFlag{}
	fs.Var(params, "p", "Step parameter as step.key=value, steps counted from 0 (repeatable)")
	reverse := fs.Bool("reverse", false, "Run the inverse pipeline")
	file := fs.String("file", "", "Read input from this file")
	asJSON := fs.Bool("json", a.cfg.Output.JSON, "Wrap the result in a JSON envelope")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if (*opsList == "") == (*recipe == "") {
		fmt.Fprintln(a.stderr, "exactly one of -ops or -recipe is required")
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(a.stderr, "at most one input argument is allowed")
		return 2
	}

	pipeline, err := buildPipeline(*opsList, *recipe, params)
	if err != nil {
		fmt.Fprintf(a.stderr, "pipeline: %v\n", err)
		return 2
	}
	if *reverse {
		pipeline.Reversible = true
		pipeline, err = pipeline.Reverse()
		if err != nil {
			return a.fail("pipeline", err)
		}
	}
	a.applyDefaults(pipeline)

	input, err := a.readInput(fs.Args(), *file, true)
	if err != nil {
		return a.fail("pipeline", err)
	}

	names := make([]string, len(pipeline.Operations))
	for i, step := range pipeline.Operations {
		names[i] = step.Name
	}

	start := time.Now()
	out, err := pipeline.Execute(a.ctx, input)
	a.audit(strings.Join(names, ","), logging.EventPipelineRun, start, err, map[string]any{
		"steps":        len(names),
		"input_bytes":  len(input),
		"output_bytes": len(out),
	})
	if err != nil {
		return a.fail("pipeline", err)
	}
	return a.writeResult(strings.Join(names, ","), out, *asJSON)
}

func buildPipeline(opsList, recipe string, params paramFlag) (*toolkit.Pipeline, error) {
	pipeline := &toolkit.Pipeline{}
	if recipe != "" {
		data, err := os.ReadFile(recipe)
		if err != nil {
			return nil, fmt.Errorf("read recipe: %w", err)
		}
		if err := json.Unmarshal(data, pipeline); err != nil {
			return nil, fmt.Errorf("parse recipe %s: %w", recipe, err)
		}
	} else {
		for _, name := range strings.Split(opsList, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			pipeline.Operations = append(pipeline.Operations, toolkit.OperationConfig{Name: name})
		}
	}
	if len(pipeline.Operations) == 0 {
		return nil, fmt.Errorf("no operations given")
	}

	for key, value := range params {
		idx, name, ok := strings.Cut(key, ".")
		n, err := strconv.Atoi(idx)
		if !ok || err != nil || name == "" {
			return nil, fmt.Errorf("parameter %q must be written as step.key=value", key)
		}
		if n < 0 || n >= len(pipeline.Operations) {
			return nil, fmt.Errorf("parameter %q refers to step %d of %d", key, n, len(pipeline.Operations))
		}
		step := &pipeline.Operations[n]
		if step.Parameters == nil {
			step.Parameters = map[string]any{}
		}
		step.Parameters[name] = value
	}
	return pipeline, nil
}

// applyDefaults fills configured defaults under the explicit parameters of
// every step. It runs after any reversal so the inverse steps get their own.
func (a *app) applyDefaults(pipeline *toolkit.Pipeline) {
	for i := range pipeline.Operations {
		step := &pipeline.Operations[i]
		merged := operationDefaults(a.cfg, step.Name)
		for k, v := range step.Parameters {
			merged[k] = v
		}
		if len(merged) == 0 {
			merged = nil
		}
		step.Parameters = merged
	}
}

func (a *app) runDetect(args []string) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	decode := fs.Bool("decode", false, "Also run the decoder of every detected encoding")
	file := fs.String("file", "", "Read input from this file")
	asJSON := fs.Bool("json", a.cfg.Output.JSON, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(a.stderr, "at most one input argument is allowed")
		return 2
	}
	input, err := a.readInput(fs.Args(), *file, true)
	if err != nil {
		return a.fail("detect", err)
	}

	ctx := a.ctx
	start := time.Now()
	if *decode {
		results, err := toolkit.DecodeAll(ctx, input)
		a.audit("detect", logging.EventDetectRun, start, err, map[string]any{"decode": true, "results": len(results)})
		if err != nil {
			return a.fail("detect", err)
		}
		if *asJSON {
			return a.writeJSON(results)
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
		for _, r := range results {
			value := r.Error
			if r.Success {
				value = printable(r.Decoded)
			}
			fmt.Fprintf(tw, "%s\t%.2f\t%s\n", r.Detection.Encoding, r.Detection.Confidence, value)
		}
		_ = tw.Flush()
		return 0
	}

	results, err := toolkit.NewSmartDetector().Detect(ctx, input)
	a.audit("detect", logging.EventDetectRun, start, err, map[string]any{"results": len(results)})
	if err != nil {
		return a.fail("detect", err)
	}
	if *asJSON {
		return a.writeJSON(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(a.stdout, "no known encoding detected")
		return 0
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", r.Encoding, r.Confidence, r.Operation, r.Reasoning)
	}
	_ = tw.Flush()
	return 0
}

func (a *app) runSchema(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "schema takes exactly one operation name")
		return 2
	}
	op, ok := toolkit.GetOperation(args[0])
	if !ok {
		fmt.Fprintf(a.stderr, "unknown operation: %s\n", args[0])
		return 2
	}
	schema, err := op.ParamsSchema()
	if err != nil {
		return a.fail(args[0], err)
	}
	fmt.Fprintln(a.stdout, string(schema))
	return 0
}

// readInput returns the positional argument, the file contents, or stdin.
// With needStdin unset a missing input is empty rather than read from stdin.
func (a *app) readInput(args []string, file string, needStdin bool) ([]byte, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, toolerr.New(toolerr.KindInvalidArgument, "input", "give either an input argument or -file, not both")
	case len(args) == 1:
		return []byte(args[0]), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, toolerr.Wrap(toolerr.KindIO, "input", "read "+file, err)
		}
		return data, nil
	case !needStdin || a.stdin == nil:
		return nil, nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.KindIO, "input", "read stdin", err)
	}
	return data, nil
}

type resultEnvelope struct {
	Operation string `json:"operation"`
	Encoding  string `json:"encoding"`
	Output    string `json:"output"`
}

func (a *app) writeResult(name string, out []byte, asJSON bool) int {
	if asJSON {
		env := resultEnvelope{Operation: name, Encoding: "utf-8", Output: string(out)}
		if !utf8.Valid(out) {
			env.Encoding = "base64"
			env.Output = base64.StdEncoding.EncodeToString(out)
		}
		return a.writeJSON(env)
	}
	if _, err := a.stdout.Write(out); err != nil {
		return a.fail(name, err)
	}
	if a.cfg.Output.Newline && utf8.Valid(out) && len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(a.stdout)
	}
	return 0
}

func (a *app) writeJSON(v any) int {
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return a.fail("encode output", err)
	}
	return 0
}

func (a *app) audit(operation string, event logging.EventType, start time.Time, err error, metadata map[string]any) {
	ev := logging.AuditEvent{
		EventType:  event,
		Operation:  operation,
		Outcome:    logging.OutcomeSuccess,
		DurationMS: time.Since(start).Milliseconds(),
		Metadata:   metadata,
	}
	if err != nil {
		ev.EventType = logging.EventOperationFailed
		ev.Outcome = logging.OutcomeFailure
		ev.ErrorKind = string(toolerr.KindOf(err))
		ev.Reason = err.Error()
	}
	_ = a.logger.Emit(ev)
}

// paramMetadata copies params for the audit log; redaction happens in Emit.
func paramMetadata(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func printable(b []byte) string {
	if utf8.Valid(b) {
		return strconv.Quote(string(b))
	}
	return "0x" + fmt.Sprintf("%x", b)
}

// operationDefaults maps configuration onto operation parameters. Flags
// given on the command line override these.
func operationDefaults(cfg config.Config, name string) map[string]any {
	defaults := map[string]any{}
	switch name {
	case "json_format", "yaml_to_json":
		defaults["indent"] = cfg.JSON.Indent
	case "aes_encrypt", "aes_decrypt":
		defaults["mode"] = cfg.Crypto.Mode
		defaults["scheme"] = cfg.Crypto.Scheme
	case "des_encrypt", "des_decrypt":
		defaults["scheme"] = cfg.Crypto.Scheme
	case "hash", "hmac":
		defaults["algorithm"] = cfg.Hash.Algorithm
	case "random_string":
		defaults["length"] = cfg.Random.Length
		defaults["secure"] = cfg.Random.Secure
	case "password_generate":
		defaults["secure"] = cfg.Random.Secure
	case "text_sort":
		if cfg.Text.Locale != "" {
			defaults["locale"] = cfg.Text.Locale
		}
	}
	return defaults
}
