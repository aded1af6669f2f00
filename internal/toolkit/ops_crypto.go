package toolkit

import (
	"github.com/RowanDark/devkit/internal/symcrypt"
)

type aesParams struct {
	Key    string `json:"key" validate:"required" jsonschema:"required"`
	Mode   string `json:"mode" validate:"oneof=CBC ECB cbc ecb" jsonschema:"enum=CBC,enum=ECB,default=CBC"`
	Scheme string `json:"scheme,omitempty" validate:"omitempty,oneof=raw passphrase" jsonschema:"enum=raw,enum=passphrase,default=raw"`
}

type desParams struct {
	Key    string `json:"key" validate:"required" jsonschema:"required"`
	Scheme string `json:"scheme,omitempty" validate:"omitempty,oneof=raw passphrase" jsonschema:"enum=raw,enum=passphrase,default=raw"`
}

func cryptoArgs(mode, scheme string) (symcrypt.Mode, []symcrypt.Option, error) {
	m, err := symcrypt.ParseMode(mode)
	if err != nil {
		return "", nil, err
	}
	s, err := symcrypt.ParseKeyScheme(scheme)
	if err != nil {
		return "", nil, err
	}
	return m, []symcrypt.Option{symcrypt.WithKeyScheme(s)}, nil
}

func init() {
	aesEncrypt := newOp("aes_encrypt", CategoryEncrypt, "Encrypt text with AES and PKCS#7 padding",
		aesParams{Mode: string(symcrypt.CBC)},
		func(in []byte, p aesParams) ([]byte, error) {
			mode, opts, err := cryptoArgs(p.Mode, p.Scheme)
			if err != nil {
				return nil, err
			}
			return text(symcrypt.AESEncrypt(string(in), p.Key, mode, opts...))
		})
	aesDecrypt := newOp("aes_decrypt", CategoryDecrypt, "Decrypt AES output back to text",
		aesParams{Mode: string(symcrypt.CBC)},
		func(in []byte, p aesParams) ([]byte, error) {
			mode, opts, err := cryptoArgs(p.Mode, p.Scheme)
			if err != nil {
				return nil, err
			}
			return text(symcrypt.AESDecrypt(string(in), p.Key, mode, opts...))
		})
	pair(aesEncrypt, aesDecrypt)

	desEncrypt := newOp("des_encrypt", CategoryEncrypt, "Encrypt text with DES in ECB mode",
		desParams{},
		func(in []byte, p desParams) ([]byte, error) {
			_, opts, err := cryptoArgs("", p.Scheme)
			if err != nil {
				return nil, err
			}
			return text(symcrypt.DESEncrypt(string(in), p.Key, opts...))
		})
	desDecrypt := newOp("des_decrypt", CategoryDecrypt, "Decrypt DES output back to text",
		desParams{},
		func(in []byte, p desParams) ([]byte, error) {
			_, opts, err := cryptoArgs("", p.Scheme)
			if err != nil {
				return nil, err
			}
			return text(symcrypt.DESDecrypt(string(in), p.Key, opts...))
		})
	pair(desEncrypt, desDecrypt)

	mustRegister(aesEncrypt, aesDecrypt, desEncrypt, desDecrypt)
}
