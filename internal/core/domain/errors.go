package domain

import "errors"

// Domain errors represent business logic failures.
// Every request-level failure wraps exactly one of these.
var (
	// ErrDecode indicates no candidate text encoding could decode the input,
	// or the decoded text was empty.
	ErrDecode = errors.New("decode failed")

	// ErrParse indicates a malformed rich-document container.
	ErrParse = errors.New("parse failed")

	// ErrSerialize indicates the output document could not be encoded.
	ErrSerialize = errors.New("serialize failed")

	// ErrKeywordSource indicates the keyword fetch failed or returned no keywords.
	// The highlighter never runs without a table.
	ErrKeywordSource = errors.New("keyword source failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a declared format with no normaliser.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// errorKinds maps sentinels to the names shown to users.
var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrDecode, "DecodeError"},
	{ErrParse, "ParseError"},
	{ErrSerialize, "SerializeError"},
	{ErrKeywordSource, "KeywordSourceError"},
	{ErrUnsupportedFormat, "UnsupportedFormat"},
	{ErrInvalidInput, "InvalidInput"},
}

// ErrorKind returns the user-facing kind of err, or "Error" when err wraps
// none of the domain sentinels. It returns "" for a nil error.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Error"
}
