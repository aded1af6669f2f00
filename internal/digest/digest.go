// Package digest computes lowercase hexadecimal message digests over text
// and exact byte streams.
package digest

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// Algorithm names a supported digest function.
type Algorithm string

const (
	MD5        Algorithm = "md5"
	SHA1       Algorithm = "sha1"
	SHA224     Algorithm = "sha224"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_512   Algorithm = "sha3-512"
	BLAKE2b256 Algorithm = "blake2b-256"
)

type algInfo struct {
	newHash func() hash.Hash
	size    int
}

var algorithms = map[Algorithm]algInfo{
	MD5:        {md5.New, md5.Size},
	SHA1:       {sha1.New, sha1.Size},
	SHA224:     {sha256.New224, sha256.Size224},
	SHA256:     {sha256.New, sha256.Size},
	SHA384:     {sha512.New384, sha512.Size384},
	SHA512:     {sha512.New, sha512.Size},
	SHA3_256:   {sha3.New256, 32},
	SHA3_512:   {sha3.New512, 64},
	BLAKE2b256: {newBlake2b256, blake2b.Size256},
}

// blake2b.New256 only fails for oversized keys.
func newBlake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// ParseAlgorithm resolves a case-insensitive algorithm name. Dashed forms
// such as "SHA-256" are accepted for the SHA-1 and SHA-2 families.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := algorithms[Algorithm(n)]; ok {
		return Algorithm(n), nil
	}
	if strings.HasPrefix(n, "sha-") {
		alt := "sha" + strings.TrimPrefix(n, "sha-")
		if _, ok := algorithms[Algorithm(alt)]; ok {
			return Algorithm(alt), nil
		}
	}
	return "", toolerr.Newf(toolerr.KindInvalidArgument, "digest.parse", "unsupported algorithm %q", name)
}

// Algorithms lists every supported algorithm in name order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms))
	for a := range algorithms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DigestLength returns the number of hex characters alg produces.
func DigestLength(alg Algorithm) (int, error) {
	s, err := lookup("digest.length", alg)
	if err != nil {
		return 0, err
	}
	return 2 * s.size, nil
}

// MD5Hex returns the MD5 digest of the UTF-8 bytes of text.
func MD5Hex(text string) string { return mustSum([]byte(text), MD5) }

// SHA1Hex returns the SHA-1 digest of the UTF-8 bytes of text.
func SHA1Hex(text string) string { return mustSum([]byte(text), SHA1) }

// SHA256Hex returns the SHA-256 digest of the UTF-8 bytes of text.
func SHA256Hex(text string) string { return mustSum([]byte(text), SHA256) }

// SHA512Hex returns the SHA-512 digest of the UTF-8 bytes of text.
func SHA512Hex(text string) string { return mustSum([]byte(text), SHA512) }

// Sum returns the digest of data under alg.
func Sum(data []byte, alg Algorithm) (string, error) {
	s, err := lookup("digest.sum", alg)
	if err != nil {
		return "", err
	}
	h := s.newHash()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileHash streams r into alg and returns the digest of its exact bytes.
func FileHash(r io.Reader, alg Algorithm) (string, error) {
	const op = "digest.file"
	s, err := lookup(op, alg)
	if err != nil {
		return "", err
	}
	h := s.newHash()
	if _, err := io.Copy(h, r); err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, op, "read input", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileHashPath hashes the file at path.
func FileHashPath(path string, alg Algorithm) (string, error) {
	if _, err := lookup("digest.file", alg); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindIO, "digest.file", "open file", err)
	}
	defer f.Close()
	return FileHash(f, alg)
}

// HMAC returns the keyed digest of text under alg.
func HMAC(text, key string, alg Algorithm) (string, error) {
	s, err := lookup("digest.hmac", alg)
	if err != nil {
		return "", err
	}
	mac := hmac.New(s.newHash, []byte(key))
	mac.Write([]byte(text))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func lookup(op string, alg Algorithm) (algInfo, error) {
	s, ok := algorithms[alg]
	if !ok {
		return algInfo{}, toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported algorithm %q", alg)
	}
	return s, nil
}

func mustSum(data []byte, alg Algorithm) string {
	out, err := Sum(data, alg)
	if err != nil {
		panic(err)
	}
	return out
}
