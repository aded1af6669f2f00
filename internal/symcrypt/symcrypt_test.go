package symcrypt

import (
	"crypto/aes"
	"crypto/des"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/toolerr"
)

func TestAESRoundTrip(t *testing.T) {
	plaintexts := []string{"", "a", "attack at dawn", "exactly16bytes!!", "Hello 世界 🌍", strings.Repeat("x", 100)}
	keys := []string{"k", "0123456789abcdef", "a 24 byte key for aes192", "a much longer key that exceeds thirty two bytes"}

	for _, scheme := range []KeyScheme{KeyRaw, KeyPassphrase} {
		for _, mode := range []Mode{ECB, CBC} {
			for _, key := range keys {
				for _, pt := range plaintexts {
					ct, err := AESEncrypt(pt, key, mode, WithKeyScheme(scheme))
					require.NoError(t, err)

					got, err := AESDecrypt(ct, key, mode, WithKeyScheme(scheme))
					require.NoError(t, err, "%s/%s/%q", scheme, mode, key)
					assert.Equal(t, pt, got)
				}
			}
		}
	}
}

func TestDESRoundTrip(t *testing.T) {
	for _, scheme := range []KeyScheme{KeyRaw, KeyPassphrase} {
		for _, pt := range []string{"", "secret message", "Grüße"} {
			ct, err := DESEncrypt(pt, "deskey", WithKeyScheme(scheme))
			require.NoError(t, err)
			got, err := DESDecrypt(ct, "deskey", WithKeyScheme(scheme))
			require.NoError(t, err)
			assert.Equal(t, pt, got)
		}
	}
}

func TestRawOutputLayout(t *testing.T) {
	ct, err := AESEncrypt("attack at dawn", "key", ECB)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	again, err := AESEncrypt("attack at dawn", "key", ECB)
	require.NoError(t, err)
	assert.Equal(t, ct, again, "ECB with a raw key is deterministic")

	ct, err = AESEncrypt("attack at dawn", "key", CBC)
	require.NoError(t, err)
	raw, err = base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	assert.Len(t, raw, 32, "IV followed by one block")

	again, err = AESEncrypt("attack at dawn", "key", CBC)
	require.NoError(t, err)
	assert.NotEqual(t, ct, again, "CBC uses a fresh IV")
}

func TestPassphraseOutputLayout(t *testing.T) {
	ct, err := AESEncrypt("hi", "pass", CBC, WithKeyScheme(KeyPassphrase))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "U2FsdGVkX1"), "Base64 of Salted__")

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	assert.Len(t, raw, 8+8+16)
}

func TestRawKeyMatchesDirectCipher(t *testing.T) {
	key := []byte("0123456789abcdef")
	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	padded := Pad([]byte("hello"), 16)
	want := make([]byte, 16)
	block.Encrypt(want, padded)

	ct, err := AESEncrypt("hello", string(key), ECB)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(want), ct)

	// "0123456789abcde" is zero-padded to the same 16 bytes as "...cde\x00".
	short, err := AESEncrypt("hello", "0123456789abcde", ECB)
	require.NoError(t, err)
	zero, err := AESEncrypt("hello", "0123456789abcde\x00", ECB)
	require.NoError(t, err)
	assert.Equal(t, zero, short)
}

func TestBlockVectors(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	out := make([]byte, 16)
	ecbEncrypt(block, out, pt)
	assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(out))

	back := make([]byte, 16)
	ecbDecrypt(block, back, out)
	assert.Equal(t, pt, back)

	key, _ = hex.DecodeString("133457799bbcdff1")
	pt, _ = hex.DecodeString("0123456789abcdef")
	dblock, err := des.NewCipher(key)
	require.NoError(t, err)
	out = make([]byte, 8)
	ecbEncrypt(dblock, out, pt)
	assert.Equal(t, "85e813540f0ab405", hex.EncodeToString(out))
}

func TestDecryptFailures(t *testing.T) {
	ct, err := AESEncrypt("attack at dawn", "right key", ECB)
	require.NoError(t, err)
	cbc, err := AESEncrypt("attack at dawn", "right key", CBC)
	require.NoError(t, err)

	tests := []struct {
		name string
		ct   string
		key  string
		mode Mode
	}{
		{"wrong key", ct, "wrong key", ECB},
		{"not base64", "@@@", "right key", ECB},
		{"not block aligned", base64.StdEncoding.EncodeToString([]byte("short")), "right key", ECB},
		{"empty ciphertext", "", "right key", ECB},
		{"cbc without body", base64.StdEncoding.EncodeToString(make([]byte, 16)), "right key", CBC},
		{"cbc too short", base64.StdEncoding.EncodeToString(make([]byte, 4)), "right key", CBC},
		{"cbc wrong key", cbc, "wrong key", CBC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AESDecrypt(tt.ct, tt.key, tt.mode)
			require.Error(t, err)
			assert.True(t, toolerr.IsKind(err, toolerr.KindDecryption), err.Error())
		})
	}

	_, err = AESDecrypt(ct, "right key", CBC)
	assert.Error(t, err, "mode mismatch")

	_, err = AESDecrypt(ct, "right key", ECB, WithKeyScheme(KeyPassphrase))
	assert.True(t, toolerr.IsKind(err, toolerr.KindDecryption))
}

func TestInvalidArguments(t *testing.T) {
	_, err := AESEncrypt("x", "", ECB)
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = AESDecrypt("x", "", ECB)
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = AESEncrypt("x", "k", Mode("GCM"))
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = DESEncrypt("x", "")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = AESEncrypt("x", "k", ECB, WithKeyScheme("pbkdf2"))
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))
}

func TestParseModeAndScheme(t *testing.T) {
	m, err := ParseMode("ecb")
	require.NoError(t, err)
	assert.Equal(t, ECB, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, CBC, m)
	_, err = ParseMode("ctr")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	s, err := ParseKeyScheme("Passphrase")
	require.NoError(t, err)
	assert.Equal(t, KeyPassphrase, s)
	s, err = ParseKeyScheme("")
	require.NoError(t, err)
	assert.Equal(t, KeyRaw, s)
	_, err = ParseKeyScheme("kdf")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))
}

func TestPadding(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{[]byte{}, []byte{8, 8, 8, 8, 8, 8, 8, 8}},
		{[]byte{1, 2, 3}, []byte{1, 2, 3, 5, 5, 5, 5, 5}},
		{[]byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 8, 8, 8, 8, 8, 8, 8, 8, 8}},
	}
	for _, tt := range tests {
		padded := Pad(tt.in, 8)
		assert.Equal(t, tt.want, padded)
		back, err := Unpad(padded, 8)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}

	for _, bad := range [][]byte{
		{},
		{1, 2, 3},
		{1, 2, 3, 4, 5, 6, 7, 0},
		{1, 2, 3, 4, 5, 6, 7, 9},
		{1, 2, 3, 4, 5, 6, 2, 3},
	} {
		_, err := Unpad(bad, 8)
		assert.Error(t, err, "%v", bad)
	}
}

func TestEVPBytesToKeyLengths(t *testing.T) {
	key, iv := evpBytesToKey([]byte("pass"), []byte("saltsalt"), 32, 16)
	assert.Len(t, key, 32)
	assert.Len(t, iv, 16)

	key2, iv2 := evpBytesToKey([]byte("pass"), []byte("saltsalt"), 32, 16)
	assert.Equal(t, key, key2)
	assert.Equal(t, iv, iv2)

	key3, _ := evpBytesToKey([]byte("pass"), []byte("SALTSALT"), 32, 16)
	assert.NotEqual(t, key, key3)
}
