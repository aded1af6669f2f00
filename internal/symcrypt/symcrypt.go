// Package symcrypt implements AES and DES text encryption with PKCS#7
// padding and Base64 output.
//
// Keys are used directly by default: the key bytes are zero-padded or
// truncated to the cipher's key size, and no key derivation takes place.
// KeyPassphrase selects the OpenSSL "Salted__" envelope instead, which
// derives key and IV from the key string with EVP_BytesToKey.
package symcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Mode is a block chaining mode.
type Mode string

const (
	ECB Mode = "ECB"
	CBC Mode = "CBC"
)

// ParseMode resolves a case-insensitive mode name. Empty means CBC.
func ParseMode(name string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "CBC":
		return CBC, nil
	case "ECB":
		return ECB, nil
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "symcrypt.mode", "unsupported mode %q", name)
}

// KeyScheme selects how key material becomes a cipher key.
type KeyScheme string

const (
	KeyRaw        KeyScheme = "raw"
	KeyPassphrase KeyScheme = "passphrase"
)

// ParseKeyScheme resolves a scheme name. Empty means KeyRaw.
func ParseKeyScheme(name string) (KeyScheme, error) {
	switch KeyScheme(strings.ToLower(strings.TrimSpace(name))) {
	case "", KeyRaw:
		return KeyRaw, nil
	case KeyPassphrase:
		return KeyPassphrase, nil
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "symcrypt.scheme", "unsupported key scheme %q", name)
}

type options struct {
	scheme KeyScheme
}

// Option configures an encrypt or decrypt call.
type Option func(*options)

// WithKeyScheme selects the key scheme. The same scheme must be used to
// decrypt.
func WithKeyScheme(s KeyScheme) Option {
	return func(o *options) {
		if s != "" {
			o.scheme = s
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{scheme: KeyRaw}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// algorithm captures what differs between AES and DES.
type algorithm struct {
	name     string
	newBlock func(key []byte) (cipher.Block, error)
	// rawKeySize picks the key length for a raw key of n bytes.
	rawKeySize func(n int) int
	// derivedKeySize is the key length for the passphrase scheme.
	derivedKeySize int
}

var aesAlgorithm = algorithm{
	name:     "aes",
	newBlock: aes.NewCipher,
	rawKeySize: func(n int) int {
		switch {
		case n <= 16:
			return 16
		case n <= 24:
			return 24
		default:
			return 32
		}
	},
	derivedKeySize: 32,
}

var desAlgorithm = algorithm{
	name:           "des",
	newBlock:       des.NewCipher,
	rawKeySize:     func(int) int { return 8 },
	derivedKeySize: 8,
}

// AESEncrypt encrypts plaintext under key with the given mode.
func AESEncrypt(plaintext, key string, mode Mode, opts ...Option) (string, error) {
	return encrypt(aesAlgorithm, plaintext, key, mode, buildOptions(opts))
}

// AESDecrypt reverses AESEncrypt. Key, mode and scheme must match.
func AESDecrypt(ciphertext, key string, mode Mode, opts ...Option) (string, error) {
	return decrypt(aesAlgorithm, ciphertext, key, mode, buildOptions(opts))
}

// DESEncrypt encrypts plaintext under key in ECB mode.
func DESEncrypt(plaintext, key string, opts ...Option) (string, error) {
	return encrypt(desAlgorithm, plaintext, key, ECB, buildOptions(opts))
}

// DESDecrypt reverses DESEncrypt.
func DESDecrypt(ciphertext, key string, opts ...Option) (string, error) {
	return decrypt(desAlgorithm, ciphertext, key, ECB, buildOptions(opts))
}

func encrypt(alg algorithm, plaintext, key string, mode Mode, o options) (string, error) {
	op := alg.name + ".encrypt"
	if err := checkArgs(op, key, mode); err != nil {
		return "", err
	}

	var (
		cipherKey, iv []byte
		prefix        []byte
	)
	switch o.scheme {
	case KeyRaw:
		cipherKey = rawKey([]byte(key), alg.rawKeySize(len(key)))
	case KeyPassphrase:
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return "", toolerr.Wrap(toolerr.KindIO, op, "generate salt", err)
		}
		block, err := alg.newBlock(make([]byte, alg.derivedKeySize))
		if err != nil {
			return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "init cipher", err)
		}
		cipherKey, iv = evpBytesToKey([]byte(key), salt, alg.derivedKeySize, block.BlockSize())
		prefix = append([]byte(saltedMagic), salt...)
	default:
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported key scheme %q", o.scheme)
	}

	block, err := alg.newBlock(cipherKey)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "init cipher", err)
	}
	bs := block.BlockSize()
	padded := Pad([]byte(plaintext), bs)
	ct := make([]byte, len(padded))

	switch mode {
	case ECB:
		ecbEncrypt(block, ct, padded)
	case CBC:
		if iv == nil {
			iv = make([]byte, bs)
			if _, err := rand.Read(iv); err != nil {
				return "", toolerr.Wrap(toolerr.KindIO, op, "generate iv", err)
			}
			prefix = iv
		}
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	}

	out := make([]byte, 0, len(prefix)+len(ct))
	out = append(out, prefix...)
	out = append(out, ct...)
	return base64.StdEncoding.EncodeToString(out), nil
}

func decrypt(alg algorithm, ciphertext, key string, mode Mode, o options) (string, error) {
	op := alg.name + ".decrypt"
	if err := checkArgs(op, key, mode); err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindDecryption, op, "ciphertext is not valid Base64", err)
	}

	var cipherKey, iv []byte
	switch o.scheme {
	case KeyRaw:
		cipherKey = rawKey([]byte(key), alg.rawKeySize(len(key)))
	case KeyPassphrase:
		if len(raw) < len(saltedMagic)+saltSize || string(raw[:len(saltedMagic)]) != saltedMagic {
			return "", toolerr.New(toolerr.KindDecryption, op, "ciphertext lacks the Salted__ header")
		}
		salt := raw[len(saltedMagic) : len(saltedMagic)+saltSize]
		raw = raw[len(saltedMagic)+saltSize:]
		block, err := alg.newBlock(make([]byte, alg.derivedKeySize))
		if err != nil {
			return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "init cipher", err)
		}
		cipherKey, iv = evpBytesToKey([]byte(key), salt, alg.derivedKeySize, block.BlockSize())
	default:
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported key scheme %q", o.scheme)
	}

	block, err := alg.newBlock(cipherKey)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "init cipher", err)
	}
	bs := block.BlockSize()

	if mode == CBC && iv == nil {
		if len(raw) < bs {
			return "", toolerr.New(toolerr.KindDecryption, op, "ciphertext too short for an IV")
		}
		iv, raw = raw[:bs], raw[bs:]
	}
	if len(raw) == 0 || len(raw)%bs != 0 {
		return "", toolerr.Newf(toolerr.KindDecryption, op, "ciphertext length %d is not a positive multiple of %d", len(raw), bs)
	}

	pt := make([]byte, len(raw))
	switch mode {
	case ECB:
		ecbDecrypt(block, pt, raw)
	case CBC:
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, raw)
	}

	pt, err = Unpad(pt, bs)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindDecryption, op, "wrong key or mode", err)
	}
	if !utf8.Valid(pt) {
		return "", toolerr.New(toolerr.KindDecryption, op, "wrong key or mode: plaintext is not valid UTF-8")
	}
	return string(pt), nil
}

func checkArgs(op, key string, mode Mode) error {
	if key == "" {
		return toolerr.New(toolerr.KindInvalidArgument, op, "key must not be empty")
	}
	if mode != ECB && mode != CBC {
		return toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported mode %q", mode)
	}
	return nil
}

// rawKey zero-pads or truncates key to size bytes.
func rawKey(key []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, key)
	return out
}
