package ports

// Transcoder converts text to symbols and back.
// *codec.Codec satisfies it.
type Transcoder interface {
	Encode(text string) string
	Decode(symbols string) (string, error)
	DecodeBytes(symbols string) ([]byte, error)
}
