// Package codec provides paired encode/decode transformations that round-trip
// on valid input.
//
// # Text and binary Base64
//
// Text is always expanded to UTF-8 before encoding, and decoded bytes must be
// valid UTF-8 again:
//
//	enc := codec.EncodeText("Hello 世界") // "SGVsbG8g5LiW55WM"
//	dec, err := codec.DecodeText(enc)
//
// Binary payloads use EncodeFile and DecodeToBlob, which never interpret the
// bytes as text.
//
// # Percent-encoding
//
// URLEncode follows the JavaScript encodeURIComponent alphabet.
// URLEncodeComplete additionally escapes ! ' ( ) *. URLDecode does not treat
// '+' as a space.
//
// # HTML entities
//
// HTMLEncode replaces & < > " ' / through a fixed table. HTMLDecode reverses
// the table, decodes numeric entities (&#65; and &#x41;) and leaves unknown
// named entities untouched.
//
// # Unicode
//
// TextToUnicode reports one CodePointRecord per rune. UnicodeToChar accepts
// an optional U+ prefix.
//
// # Errors
//
// Malformed input fails with a toolerr.KindFormat error. Unknown option
// values fail with toolerr.KindInvalidArgument.
package codec
