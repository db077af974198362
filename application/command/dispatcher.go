// Package command turns chat messages such as "/encode hello" into translator
// calls and renders the result as reply text.
package command

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reglet-dev/ohoo/application/template"
	"github.com/reglet-dev/ohoo/application/translator"
	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/domain/errors"
	"github.com/reglet-dev/ohoo/domain/ports"
)

// ErrUnknownCommand is returned when a message does not start with a known command.
var ErrUnknownCommand = stdErrors.New("unknown command")

// Checker runs a translator operation. *plugin.Host and
// *translator.Translator both satisfy it.
type Checker interface {
	Check(ctx context.Context, config map[string]any) (entities.Result, error)
}

// Invocation is a parsed chat message.
type Invocation struct {
	Command entities.CommandSpec
	Payload string
}

// Reply is what the dispatcher sends back to the user.
type Reply struct {
	Result  *entities.Result
	Command string
	Text    string
	Failed  bool
}

const (
	encodedTemplate = "Encoded:\n{{.encoded}}"
	decodedTemplate = "Decoded:\n{{.decoded}}"
	failedTemplate  = "{{.title}} failed: {{.reason}}{{if .raw_hex}}\nhex: {{.raw_hex}}{{end}}"
	usageTemplate   = "Please provide {{.what}} to {{.operation}}!\nUsage: {{.usage}}"
)

// failure reasons shown to users, keyed by error code.
var reasons = map[string]string{
	string(errors.KindOddLength):     errors.ErrOddLength.Error(),
	string(errors.KindInvalidSymbol): errors.ErrInvalidSymbol.Error(),
	string(errors.KindNotValidText):  "could not be decoded as UTF-8 text",
}

// Dispatcher routes messages to a Checker using the manifest's command table.
type Dispatcher struct {
	checker   Checker
	manifest  *entities.PluginManifest
	templates ports.TemplateEngine
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTemplateEngine replaces the reply renderer.
func WithTemplateEngine(e ports.TemplateEngine) DispatcherOption {
	return func(d *Dispatcher) {
		d.templates = e
	}
}

// NewDispatcher creates a dispatcher for the commands declared in manifest.
func NewDispatcher(checker Checker, manifest *entities.PluginManifest, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		checker:   checker,
		manifest:  manifest,
		templates: template.NewGoTemplateEngine(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse extracts the command and payload from a message.
//
// A command is recognised as "/name" followed by whitespace or the end of the
// message, or as a bare "name" followed by whitespace or the end. Names and
// aliases come from the manifest and are case-sensitive. The payload is the
// remainder with surrounding whitespace trimmed.
func (d *Dispatcher) Parse(message string) (Invocation, bool) {
	msg := strings.TrimSpace(message)

	for _, spec := range d.manifest.Commands {
		names := append([]string{spec.Name}, spec.Aliases...)
		for _, name := range names {
			if rest, ok := cutCommand(msg, "/"+name); ok {
				return Invocation{Command: spec, Payload: rest}, true
			}
			if rest, ok := cutCommand(msg, name); ok {
				return Invocation{Command: spec, Payload: rest}, true
			}
		}
	}
	return Invocation{}, false
}

func cutCommand(msg, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(msg, prefix)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Dispatch parses message, runs the matching operation and renders a reply.
// Rejected input produces a reply with Failed set, not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) (Reply, error) {
	inv, ok := d.Parse(message)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownCommand, firstWord(message))
	}

	d.logger.DebugContext(ctx, "dispatching message",
		"message", strings.TrimSpace(message),
		"command", inv.Command.Name,
		"payload", inv.Payload,
	)

	op := inv.Command.Operation
	if op != translator.ModeHelp && inv.Payload == "" {
		return d.usage(inv.Command)
	}

	res, err := d.checker.Check(ctx, map[string]any{"mode": op, "text": inv.Payload})
	if err != nil {
		d.logger.ErrorContext(ctx, "command failed", "command", inv.Command.Name, "error", err)
		return Reply{}, err
	}

	reply := Reply{Command: inv.Command.Name, Result: &res}
	if !res.IsSuccess() {
		reply.Failed = true
		reply.Text, err = d.render(failedTemplate, failureData(op, res))
		return reply, err
	}

	switch op {
	case translator.ModeEncode:
		reply.Text, err = d.render(encodedTemplate, map[string]any{"encoded": res.String("encoded")})
	case translator.ModeDecode:
		reply.Text, err = d.render(decodedTemplate, map[string]any{"decoded": res.String("decoded")})
	default:
		reply.Text = res.String("help")
	}
	return reply, err
}

func (d *Dispatcher) usage(spec entities.CommandSpec) (Reply, error) {
	what := "text"
	if spec.Operation == translator.ModeDecode {
		what = "symbols"
	}
	text, err := d.render(usageTemplate, map[string]any{
		"what":      what,
		"operation": spec.Operation,
		"usage":     spec.Usage,
	})
	return Reply{Command: spec.Name, Text: text, Failed: true}, err
}

func (d *Dispatcher) render(tmpl string, data map[string]any) (string, error) {
	out, err := d.templates.Render([]byte(tmpl), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func failureData(op string, res entities.Result) map[string]any {
	title := "Encode"
	switch op {
	case translator.ModeDecode:
		title = "Decode"
	case translator.ModeHelp:
		title = "Help"
	}

	reason := res.Message
	rawHex := ""
	if res.Error != nil {
		if r, ok := reasons[res.Error.Code]; ok {
			reason = r
		}
		rawHex = res.Error.Detail("raw_hex")
	}
	return map[string]any{"title": title, "reason": reason, "raw_hex": rawHex}
}

func firstWord(message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
