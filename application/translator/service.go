package translator

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/reglet-dev/ohoo/application/plugin"
	"github.com/reglet-dev/ohoo/domain/entities"
	"github.com/reglet-dev/ohoo/domain/errors"
	"github.com/reglet-dev/ohoo/domain/ports"
)

// ServiceName is the name the translator service registers under.
const ServiceName = "translator"

// Service exposes the codec as plugin operations.
type Service struct {
	plugin.Service `name:"translator" desc:"Converts text to and from ohoo symbols"`
	EncodeOp       plugin.Op `desc:"Encode plain text into symbols" method:"Encode"`
	DecodeOp       plugin.Op `desc:"Decode symbols into plain text" method:"Decode"`
	HelpOp         plugin.Op `desc:"Describe the available commands" method:"Help"`

	codec  ports.Transcoder
	help   func() (string, error)
	logger *slog.Logger
}

// Encode converts req.Text to symbols.
func (s *Service) Encode(ctx context.Context, req *plugin.Request) (*entities.Result, error) {
	encoded := s.codec.Encode(req.Text)
	s.logger.DebugContext(ctx, "encoded text", "bytes", len(req.Text))

	res := entities.ResultSuccess(fmt.Sprintf("encoded %d bytes", len(req.Text)), map[string]any{
		"encoded":      encoded,
		"byte_length":  len(req.Text),
		"symbol_count": utf8.RuneCountInString(encoded),
	})
	return &res, nil
}

// Decode converts req.Text back to text. Rejected input yields an error
// result, not a Go error.
func (s *Service) Decode(ctx context.Context, req *plugin.Request) (*entities.Result, error) {
	if cfg, ok := req.Config.(TranslateConfig); ok && cfg.Raw {
		return s.decodeRaw(ctx, req.Text)
	}

	decoded, err := s.codec.Decode(req.Text)
	if err != nil {
		s.logger.DebugContext(ctx, "decode rejected", "error", err)
		res := entities.ResultError(errors.ToErrorDetail(err))
		return &res, nil
	}

	res := entities.ResultSuccess(fmt.Sprintf("decoded %d bytes", len(decoded)), map[string]any{
		"decoded":     decoded,
		"byte_length": len(decoded),
	})
	return &res, nil
}

func (s *Service) decodeRaw(ctx context.Context, symbols string) (*entities.Result, error) {
	raw, err := s.codec.DecodeBytes(symbols)
	if err != nil {
		s.logger.DebugContext(ctx, "decode rejected", "error", err)
		res := entities.ResultError(errors.ToErrorDetail(err))
		return &res, nil
	}

	data := map[string]any{
		"raw_hex":     errors.FormatHex(raw),
		"byte_length": len(raw),
	}
	if utf8.Valid(raw) {
		data["decoded"] = string(raw)
	}
	res := entities.ResultSuccess(fmt.Sprintf("decoded %d bytes", len(raw)), data)
	return &res, nil
}

// Help renders the command overview.
func (s *Service) Help(ctx context.Context, req *plugin.Request) (*entities.Result, error) {
	text, err := s.help()
	if err != nil {
		return nil, err
	}
	res := entities.ResultSuccess("help", map[string]any{"help": text})
	return &res, nil
}
