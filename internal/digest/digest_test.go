package digest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/toolerr"
)

func TestPublishedVectors(t *testing.T) {
	tests := []struct {
		alg      Algorithm
		input    string
		expected string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{MD5, "hello", "5d41402abc4b2a76b9719d911017c592"},
		{SHA1, "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA224, "", "d14a028c2a3a2bc9476102bb288234c415a2b01f828ea62ac5b3e42f"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA384, "", "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
		{SHA512, "", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{SHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{SHA3_512, "", "a69f73cca23a9ac5c8b567dc185a756e97c982164fe25859e0d1dcc1475c80a615b2123af1f5f94c11e3e9402c3ac558f500199d95b6d3e301758586281dcd26"},
		{BLAKE2b256, "", "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg)+"/"+tt.input, func(t *testing.T) {
			got, err := Sum([]byte(tt.input), tt.alg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			n, err := DigestLength(tt.alg)
			require.NoError(t, err)
			assert.Len(t, got, n)
		})
	}
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", MD5Hex("hello"))
	assert.Len(t, SHA1Hex("x"), 40)
	assert.Len(t, SHA256Hex("x"), 64)
	assert.Len(t, SHA512Hex("x"), 128)
	assert.Equal(t, SHA256Hex("héllo"), mustSum([]byte("héllo"), SHA256))
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{
		"MD5":         MD5,
		" sha256 ":    SHA256,
		"SHA-512":     SHA512,
		"sha-1":       SHA1,
		"SHA3-256":    SHA3_256,
		"Blake2b-256": BLAKE2b256,
	} {
		got, err := ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "crc32", "sha-384x", "sha-"} {
		_, err := ParseAlgorithm(in)
		assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument), in)
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := Sum([]byte("x"), "whirlpool")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = FileHash(strings.NewReader("x"), "whirlpool")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = DigestLength("whirlpool")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))
}

func TestFileHashIsByteExact(t *testing.T) {
	payload := []byte{0xff, 0xfe, 0x00, 0x80, 'a'}
	want, err := Sum(payload, SHA256)
	require.NoError(t, err)

	got, err := FileHash(bytes.NewReader(payload), SHA256)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, payload, 0o600))
	got, err = FileHashPath(path, SHA256)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileHashIOErrors(t *testing.T) {
	_, err := FileHash(iotest.ErrReader(errors.New("boom")), MD5)
	assert.True(t, toolerr.IsKind(err, toolerr.KindIO))

	_, err = FileHashPath(filepath.Join(t.TempDir(), "nope"), MD5)
	assert.True(t, toolerr.IsKind(err, toolerr.KindIO))
}

func TestHMAC(t *testing.T) {
	const msg = "The quick brown fox jumps over the lazy dog"

	got, err := HMAC(msg, "key", SHA256)
	require.NoError(t, err)
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got)

	got, err = HMAC(msg, "key", MD5)
	require.NoError(t, err)
	assert.Equal(t, "80070713463e7749b90c2dc24911e275", got)

	for _, alg := range Algorithms() {
		out, err := HMAC(msg, "key", alg)
		require.NoError(t, err, alg)
		n, _ := DigestLength(alg)
		assert.Len(t, out, n, alg)
	}
}

func TestAlgorithmsSorted(t *testing.T) {
	algs := Algorithms()
	require.Len(t, algs, 9)
	for i := 1; i < len(algs); i++ {
		assert.Less(t, string(algs[i-1]), string(algs[i]))
	}
}
