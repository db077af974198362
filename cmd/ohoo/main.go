// ohoo converts text to and from the sixteen-symbol ohoo alphabet.
//
// One-shot mode encodes or decodes a single payload taken from the
// arguments or stdin. Chat mode reads messages such as "/encode hello"
// line by line and answers each one the way the chat plugin does.
// Request mode reads a JSON or CBOR request envelope from stdin and writes
// the response envelope to stdout.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/ohoo/application/command"
	"github.com/reglet-dev/ohoo/application/plugin"
	"github.com/reglet-dev/ohoo/application/translator"
	"github.com/reglet-dev/ohoo/application/validation"
	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/infrastructure/parser"
	ohoolog "github.com/reglet-dev/ohoo/log"
	"github.com/reglet-dev/ohoo/wireformat"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// exitError carries a process exit code.
type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// rejected reports input the translator refused. The reply has already been
// written.
func rejected(res entities.Result) error {
	var err error = res.Error
	if res.Error == nil {
		err = errors.New(res.Message)
	}
	return &exitError{code: 1, err: err}
}

type app struct {
	raw      bool
	stdin    io.Reader
	stdout   io.Writer
	cfg      entities.Config
	logger   *slog.Logger
	manifest *entities.PluginManifest
	plugin   *translator.Translator
	host     *plugin.Host
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		format      string
		logLevel    string
		pluginID    string
		raw         bool
		showVersion bool
		showHelp    bool
	)

	flagSet := pflag.NewFlagSet("ohoo", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&format, "format", "f", "text", "output format: text, json or cbor")
	flagSet.StringVar(&logLevel, "log-level", "warn", "minimum log level: debug, info, warn or error")
	flagSet.StringVar(&pluginID, "plugin-id", "", "plugin id stamped into result metadata (default: manifest name)")
	flagSet.BoolVar(&raw, "raw", false, "decode: print the recovered bytes as hex instead of text")
	flagSet.BoolVar(&showVersion, "version", false, "print the version and exit")
	flagSet.BoolVarP(&showHelp, "help", "h", false, "show help")
	flagSet.Usage = func() {}

	if err := flagSet.Parse(args); err != nil {
		return usageError("%v", err)
	}

	if showHelp {
		printHelp(stdout, flagSet)
		return nil
	}

	cfg := entities.NewConfig(entities.WithPluginID(pluginID))
	flags := map[string]any{"format": format, "log_level": logLevel}
	if err := validation.ValidateConfig(flags, &cfg); err != nil {
		return usageError("%v", err)
	}
	level, err := ohoolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return usageError("%v", err)
	}
	logger := ohoolog.New(ohoolog.WithWriter(stderr), ohoolog.WithLevel(level))

	a, err := newApp(cfg, logger, stdin, stdout)
	if err != nil {
		return err
	}
	a.raw = raw

	if showVersion {
		fmt.Fprintf(stdout, "ohoo %s (%s %s)\n", version, a.manifest.Name, a.manifest.Version)
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return usageError("no command given")
	}

	ctx := context.Background()
	if err := a.host.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.host.Stop(ctx); err != nil {
			logger.Error("failed to stop plugin", "error", err)
		}
	}()

	switch name, cmdArgs := rest[0], rest[1:]; name {
	case "encode":
		return a.transcode(ctx, translator.ModeEncode, cmdArgs)
	case "decode":
		return a.transcode(ctx, translator.ModeDecode, cmdArgs)
	case "chat":
		return a.chat(ctx)
	case "request":
		return a.request(ctx)
	case "manifest":
		return a.printManifest()
	case "schema":
		return a.printSchema(ctx)
	case "help":
		return a.help(ctx)
	default:
		return usageError("unknown command %q (see ohoo --help)", name)
	}
}

func newApp(cfg entities.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) (*app, error) {
	manifest, err := translator.LoadManifest(parser.NewYamlManifestParser())
	if err != nil {
		return nil, err
	}
	tr, err := translator.New(manifest, translator.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		cfg:      cfg,
		logger:   logger,
		manifest: manifest,
		plugin:   tr,
		host:     plugin.NewHost(tr, plugin.WithLogger(logger), plugin.WithConfig(cfg)),
	}, nil
}

// payload joins args, or reads stdin when there are none.
func (a *app) payload(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func (a *app) transcode(ctx context.Context, mode string, args []string) error {
	text, err := a.payload(args)
	if err != nil {
		return err
	}
	if mode == translator.ModeDecode {
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return usageError("nothing to %s", mode)
	}

	cfg := map[string]any{"mode": mode, "text": text}
	if a.raw {
		cfg["raw"] = true
	}
	res, err := a.host.Check(ctx, cfg)
	if err != nil {
		return err
	}

	if a.cfg.Format != "text" {
		if err := a.writeEnvelope(wireformat.TranscodeResponseWire{Result: res}); err != nil {
			return err
		}
	} else if res.IsSuccess() {
		key := "encoded"
		switch {
		case a.raw:
			key = "raw_hex"
		case mode == translator.ModeDecode:
			key = "decoded"
		}
		fmt.Fprintln(a.stdout, res.String(key))
	}

	if !res.IsSuccess() {
		return rejected(res)
	}
	return nil
}

func (a *app) chat(ctx context.Context) error {
	d := command.NewDispatcher(a.host, a.manifest, command.WithLogger(a.logger))

	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		reply, err := d.Dispatch(ctx, line)
		if errors.Is(err, command.ErrUnknownCommand) {
			a.logger.DebugContext(ctx, "ignoring message", "error", err)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, reply.Text)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return nil
}

func (a *app) request(ctx context.Context) error {
	format, err := wireformat.ParseFormat(a.cfg.Format)
	if err != nil {
		return usageError("request needs --format json or --format cbor")
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	var req wireformat.TranscodeRequestWire
	if err := wireformat.Unmarshal(format, data, &req); err != nil {
		return usageError("%v", err)
	}

	res, err := a.host.Check(ctx, req.Config())
	if err != nil {
		return err
	}
	if err := a.writeEnvelope(wireformat.TranscodeResponseWire{Result: res}); err != nil {
		return err
	}
	if !res.IsSuccess() {
		return rejected(res)
	}
	return nil
}

func (a *app) writeEnvelope(v any) error {
	format := wireformat.Format(a.cfg.Format)
	data, err := wireformat.Marshal(format, v)
	if err != nil {
		return err
	}
	if format == wireformat.FormatJSON {
		data = append(data, '\n')
	}
	_, err = a.stdout.Write(data)
	return err
}

// printManifest writes the declared commands as YAML, or the generated
// service manifest as an envelope.
func (a *app) printManifest() error {
	if a.cfg.Format != "text" {
		return a.writeEnvelope(a.plugin.Definition().Manifest())
	}
	data, err := yaml.Marshal(a.manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	_, err = a.stdout.Write(data)
	return err
}

func (a *app) printSchema(ctx context.Context) error {
	data, err := a.plugin.Schema(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}

func (a *app) help(ctx context.Context) error {
	res, err := a.host.Check(ctx, map[string]any{"mode": translator.ModeHelp})
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return rejected(res)
	}
	_, err = fmt.Fprint(a.stdout, res.String("help"))
	return err
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `ohoo converts text to and from the sixteen-symbol ohoo alphabet.

Usage:
  ohoo [flags] <command> [args]

Commands:
  encode [text]       encode text (from args or stdin)
  decode [symbols]    decode symbols (from args or stdin); --raw prints hex
  chat                answer /encode, /decode and /Trans_help messages read from stdin
  request             read a request envelope from stdin (needs --format json or cbor)
  manifest            print the command manifest
  schema              print the JSON schema of the translator config
  help                print the plugin help text

Examples:
  ohoo encode "Hello, world!"
  echo 咕～嗯哈 | ohoo decode
  ohoo --format json decode 咕～嗯哈

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
