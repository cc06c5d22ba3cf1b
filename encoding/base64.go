package encoding

import (
	"errors"
	"fmt"
)

const (
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base64Pad      = '='

	invalidSymbol = 0xFF
)

// ErrMalformedInput is matched by every Base64 decoding failure.
var ErrMalformedInput = errors.New("malformed base64 input")

// MalformedInputError describes why a Base64 text was rejected.
type MalformedInputError struct {
	// Offset is the index of the offending character, or the text length when
	// the length itself is invalid.
	Offset int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedInput, e.Offset, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

var base64Reverse = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = invalidSymbol
	}
	for i := 0; i < len(base64Alphabet); i++ {
		table[base64Alphabet[i]] = byte(i)
	}

	return table
}()

// EncodedLen returns the length of the Base64 text for n source bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the maximum number of bytes a Base64 text of n characters decodes to.
func DecodedLen(n int) int {
	return n / 4 * 3
}

// EncodeBase64 returns the padded standard Base64 rendition of src.
//
// An empty input produces an empty string.
func EncodeBase64(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	return string(AppendBase64(make([]byte, 0, EncodedLen(len(src))), src))
}

// AppendBase64 appends the Base64 rendition of src to dst and returns the extended slice.
func AppendBase64(dst, src []byte) []byte {
	for len(src) >= 3 {
		v := uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
		dst = append(dst,
			base64Alphabet[v>>18&0x3F],
			base64Alphabet[v>>12&0x3F],
			base64Alphabet[v>>6&0x3F],
			base64Alphabet[v&0x3F],
		)
		src = src[3:]
	}

	switch len(src) {
	case 1:
		v := uint32(src[0]) << 16
		dst = append(dst,
			base64Alphabet[v>>18&0x3F],
			base64Alphabet[v>>12&0x3F],
			base64Pad,
			base64Pad,
		)
	case 2:
		v := uint32(src[0])<<16 | uint32(src[1])<<8
		dst = append(dst,
			base64Alphabet[v>>18&0x3F],
			base64Alphabet[v>>12&0x3F],
			base64Alphabet[v>>6&0x3F],
			base64Pad,
		)
	}

	return dst
}

// DecodeBase64 reverses EncodeBase64.
//
// The text must be a whole number of 4-character quanta drawn from the standard
// alphabet. Padding may only occupy the last one or two positions of the final
// quantum. Whitespace is not skipped. On failure no partial output is returned
// and the error is a *MalformedInputError.
func DecodeBase64(text string) ([]byte, error) {
	if len(text)%4 != 0 {
		return nil, &MalformedInputError{Offset: len(text), Reason: "length is not a multiple of 4"}
	}

	if len(text) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, DecodedLen(len(text)))
	last := len(text) - 4

	for q := 0; q < len(text); q += 4 {
		pad := 0
		if q == last {
			var err error
			if pad, err = finalPadding(text, q); err != nil {
				return nil, err
			}
		}

		var v uint32
		for i := 0; i < 4-pad; i++ {
			sym := base64Reverse[text[q+i]]
			if sym == invalidSymbol {
				return nil, malformedSymbol(text, q+i)
			}
			v |= uint32(sym) << (18 - 6*uint(i))
		}

		switch pad {
		case 0:
			out = append(out, byte(v>>16), byte(v>>8), byte(v))
		case 1:
			out = append(out, byte(v>>16), byte(v>>8))
		case 2:
			out = append(out, byte(v>>16))
		}
	}

	return out, nil
}

// finalPadding counts the padding of the quantum starting at q and rejects
// padding in positions other than the last one or two.
func finalPadding(text string, q int) (int, error) {
	switch {
	case text[q+2] == base64Pad && text[q+3] == base64Pad:
		return 2, nil
	case text[q+3] == base64Pad:
		return 1, nil
	case text[q+2] == base64Pad:
		return 0, &MalformedInputError{Offset: q + 2, Reason: "padding followed by data"}
	}

	return 0, nil
}

func malformedSymbol(text string, offset int) error {
	if text[offset] == base64Pad {
		return &MalformedInputError{Offset: offset, Reason: "misplaced padding"}
	}

	return &MalformedInputError{
		Offset: offset,
		Reason: fmt.Sprintf("illegal character %q", text[offset]),
	}
}
