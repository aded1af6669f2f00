package toolkit

import (
	"github.com/RowanDark/devkit/internal/codec"
)

type base64DecodeParams struct {
	Binary bool `json:"binary,omitempty" jsonschema:"description=Return raw bytes instead of requiring UTF-8 text"`
}

type urlEncodeParams struct {
	Complete bool `json:"complete,omitempty" jsonschema:"description=Also escape ! ' ( ) and *"`
}

type normalizeParams struct {
	Form string `json:"form" validate:"oneof=NFC NFD NFKC NFKD nfc nfd nfkc nfkd" jsonschema:"enum=NFC,enum=NFD,enum=NFKC,enum=NFKD,default=NFC"`
}

type jwtSignParams struct {
	Secret    string `json:"secret" validate:"required" jsonschema:"required"`
	Algorithm string `json:"algorithm" validate:"oneof=HS256 HS384 HS512 hs256 hs384 hs512" jsonschema:"enum=HS256,enum=HS384,enum=HS512,default=HS256"`
}

type jwtVerifyParams struct {
	Secret string `json:"secret" validate:"required" jsonschema:"required"`
}

func text(s string, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func init() {
	base64Encode := simpleOp("base64_encode", CategoryEncode, "Encode data as standard Base64",
		func(in []byte) ([]byte, error) {
			return []byte(codec.EncodeText(string(in))), nil
		})
	base64Decode := newOp("base64_decode", CategoryDecode, "Decode standard Base64 data",
		base64DecodeParams{},
		func(in []byte, p base64DecodeParams) ([]byte, error) {
			if p.Binary {
				blob, err := codec.DecodeToBlob(string(in), "")
				if err != nil {
					return nil, err
				}
				return blob.Data, nil
			}
			return text(codec.DecodeText(string(in)))
		})
	pair(base64Encode, base64Decode)
	// Encoding accepts any bytes, so its inverse must not insist on UTF-8.
	base64Encode.ReverseParams = map[string]any{"binary": true}

	base64URLEncode := simpleOp("base64url_encode", CategoryEncode, "Encode data as URL-safe Base64",
		func(in []byte) ([]byte, error) {
			return []byte(codec.EncodeBase64URL(in)), nil
		})
	base64URLDecode := simpleOp("base64url_decode", CategoryDecode, "Decode URL-safe Base64 data, padded or not",
		func(in []byte) ([]byte, error) {
			return codec.DecodeBase64URL(string(in))
		})
	pair(base64URLEncode, base64URLDecode)

	urlEncode := newOp("url_encode", CategoryEncode, "Percent-encode text as a URL component",
		urlEncodeParams{},
		func(in []byte, p urlEncodeParams) ([]byte, error) {
			if p.Complete {
				return []byte(codec.URLEncodeComplete(string(in))), nil
			}
			return []byte(codec.URLEncode(string(in))), nil
		})
	urlDecode := simpleOp("url_decode", CategoryDecode, "Decode percent-encoded text",
		func(in []byte) ([]byte, error) {
			return text(codec.URLDecode(string(in)))
		})
	pair(urlEncode, urlDecode)

	htmlEncode := simpleOp("html_encode", CategoryEncode, "Encode special characters as HTML entities",
		func(in []byte) ([]byte, error) {
			return []byte(codec.HTMLEncode(string(in))), nil
		})
	htmlDecode := simpleOp("html_decode", CategoryDecode, "Decode named and numeric HTML entities",
		func(in []byte) ([]byte, error) {
			return []byte(codec.HTMLDecode(string(in))), nil
		})
	pair(htmlEncode, htmlDecode)

	hexEncode := simpleOp("hex_encode", CategoryEncode, "Encode bytes as hexadecimal string",
		func(in []byte) ([]byte, error) {
			return []byte(codec.HexEncode(in)), nil
		})
	hexDecode := simpleOp("hex_decode", CategoryDecode, "Decode hexadecimal string to bytes",
		func(in []byte) ([]byte, error) {
			return codec.HexDecode(string(in))
		})
	pair(hexEncode, hexDecode)

	base58Encode := simpleOp("base58_encode", CategoryEncode, "Encode bytes with the Bitcoin Base58 alphabet",
		func(in []byte) ([]byte, error) {
			return []byte(codec.Base58Encode(in)), nil
		})
	base58Decode := simpleOp("base58_decode", CategoryDecode, "Decode Bitcoin Base58 to bytes",
		func(in []byte) ([]byte, error) {
			return codec.Base58Decode(string(in))
		})
	pair(base58Encode, base58Decode)

	unicodeInspect := simpleOp("unicode_inspect", CategoryDecode, "List the code point of every character",
		func(in []byte) ([]byte, error) {
			return jsonResult(codec.TextToUnicode(string(in)))
		})
	unicodeFromChar := simpleOp("unicode_from_char", CategoryEncode, "Show the U+XXXX form of the first character",
		func(in []byte) ([]byte, error) {
			return []byte(codec.CharToUnicode(string(in))), nil
		})
	unicodeToChar := simpleOp("unicode_to_char", CategoryDecode, "Convert a U+XXXX code point to its character",
		func(in []byte) ([]byte, error) {
			return text(codec.UnicodeToChar(string(in)))
		})
	unicodeNormalize := newOp("unicode_normalize", CategoryEncode, "Apply a Unicode normalization form",
		normalizeParams{Form: string(codec.NFC)},
		func(in []byte, p normalizeParams) ([]byte, error) {
			return text(codec.Normalize(string(in), codec.NormalizationForm(p.Form)))
		})

	jwtDecode := simpleOp("jwt_decode", CategoryDecode, "Decode a JWT without verifying its signature",
		func(in []byte) ([]byte, error) {
			parts, err := codec.DecodeJWT(string(in))
			if err != nil {
				return nil, err
			}
			return jsonResult(parts)
		})
	jwtSign := newOp("jwt_sign", CategoryEncode, "Sign JSON claims as an HMAC JWT",
		jwtSignParams{Algorithm: "HS256"},
		func(in []byte, p jwtSignParams) ([]byte, error) {
			return text(codec.SignJWT(string(in), p.Secret, p.Algorithm))
		})
	jwtVerify := newOp("jwt_verify", CategoryDecode, "Verify an HMAC JWT and return its claims",
		jwtVerifyParams{},
		func(in []byte, p jwtVerifyParams) ([]byte, error) {
			claims, err := codec.VerifyJWT(string(in), p.Secret)
			if err != nil {
				return nil, err
			}
			return jsonResult(claims)
		})

	mustRegister(
		base64Encode, base64Decode,
		base64URLEncode, base64URLDecode,
		urlEncode, urlDecode,
		htmlEncode, htmlDecode,
		hexEncode, hexDecode,
		base58Encode, base58Decode,
		unicodeInspect, unicodeFromChar, unicodeToChar, unicodeNormalize,
		jwtDecode, jwtSign, jwtVerify,
	)
}
