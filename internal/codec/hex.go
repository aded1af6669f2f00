package codec

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/RowanDark/devkit/internal/toolerr"
)

var hexSeparators = strings.NewReplacer(" ", "", ":", "", "-", "", "\n", "", "\t", "")

// HexEncode returns the lowercase hexadecimal form of data.
func HexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

// HexDecode decodes a hexadecimal string. A leading 0x or \x and the
// separators space, colon and dash are ignored.
func HexDecode(s string) ([]byte, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimPrefix(in, "0x")
	in = strings.TrimPrefix(in, `\x`)
	in = hexSeparators.Replace(in)

	decoded, err := hex.DecodeString(in)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.KindFormat, "hex.decode", "input is not valid hexadecimal", err)
	}
	return decoded, nil
}

// Base58Encode encodes data with the Bitcoin alphabet.
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

// Base58Decode reverses Base58Encode.
func Base58Decode(s string) ([]byte, error) {
	decoded, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, toolerr.Wrap(toolerr.KindFormat, "base58.decode", "input is not valid Base58", err)
	}
	return decoded, nil
}
