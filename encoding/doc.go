// Package encoding renders bytes as padded standard Base64 text and back.
//
// The codec uses the single alphabet A-Z a-z 0-9 + / with '=' padding. Every
// group of three source bytes becomes four characters; a final group of one or
// two bytes is padded to four characters with "==" or "=".
//
// # Usage
//
//	text := encoding.EncodeBase64(payload)
//
//	raw, err := encoding.DecodeBase64(text)
//	if err != nil {
//	    var malformed *encoding.MalformedInputError
//	    if errors.As(err, &malformed) {
//	        log.Printf("bad input at offset %d: %s", malformed.Offset, malformed.Reason)
//	    }
//	}
//
// # Strictness
//
// Decoding accepts exactly what EncodeBase64 produces, apart from the unused
// low bits of a padded final quantum, which are ignored:
//   - the text length must be a multiple of 4
//   - whitespace and line breaks are rejected
//   - '=' may only occupy the last one or two positions of the final quantum
//
// Errors match ErrMalformedInput via errors.Is and carry the byte offset of the
// first offending character.
package encoding
