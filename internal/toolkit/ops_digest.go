package toolkit

import (
	"github.com/RowanDark/devkit/internal/digest"
)

type hashParams struct {
	Algorithm string `json:"algorithm" validate:"required" jsonschema:"description=md5 sha1 sha224 sha256 sha384 sha512 sha3-256 sha3-512 or blake2b-256,default=sha256"`
}

type hmacParams struct {
	Key       string `json:"key" validate:"required" jsonschema:"required"`
	Algorithm string `json:"algorithm" validate:"required" jsonschema:"default=sha256"`
}

func sumOp(name, desc string, alg digest.Algorithm) Operation {
	return simpleOp(name, CategoryHash, desc, func(in []byte) ([]byte, error) {
		return text(digest.Sum(in, alg))
	})
}

func init() {
	hash := newOp("hash", CategoryHash, "Hex digest of the input bytes",
		hashParams{Algorithm: string(digest.SHA256)},
		func(in []byte, p hashParams) ([]byte, error) {
			alg, err := digest.ParseAlgorithm(p.Algorithm)
			if err != nil {
				return nil, err
			}
			return text(digest.Sum(in, alg))
		})
	hmac := newOp("hmac", CategoryHash, "Hex HMAC of the input with a secret key",
		hmacParams{Algorithm: string(digest.SHA256)},
		func(in []byte, p hmacParams) ([]byte, error) {
			alg, err := digest.ParseAlgorithm(p.Algorithm)
			if err != nil {
				return nil, err
			}
			return text(digest.HMAC(string(in), p.Key, alg))
		})

	mustRegister(
		hash, hmac,
		sumOp("md5_hash", "Calculate MD5 hash", digest.MD5),
		sumOp("sha1_hash", "Calculate SHA-1 hash", digest.SHA1),
		sumOp("sha256_hash", "Calculate SHA-256 hash", digest.SHA256),
		sumOp("sha512_hash", "Calculate SHA-512 hash", digest.SHA512),
	)
}
