package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// JWTParts is the decoded, unverified content of a JSON Web Token.
type JWTParts struct {
	Header    map[string]any `json:"header"`
	Claims    map[string]any `json:"payload"`
	Signature string         `json:"signature"`
	Algorithm string         `json:"algorithm,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	IssuedAt  *time.Time     `json:"issued_at,omitempty"`
}

var hmacMethods = []string{"HS256", "HS384", "HS512"}

// DecodeJWT splits token into header, claims and signature without
// verifying the signature or validating claims.
func DecodeJWT(token string) (JWTParts, error) {
	const op = "jwt.decode"
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	tok, parts, err := parser.ParseUnverified(strings.TrimSpace(token), claims)
	if err != nil {
		return JWTParts{}, toolerr.Wrap(toolerr.KindFormat, op, "malformed token", err)
	}
	if len(parts) != 3 {
		return JWTParts{}, toolerr.Newf(toolerr.KindFormat, op, "expected 3 parts, got %d", len(parts))
	}

	out := JWTParts{
		Header:    tok.Header,
		Claims:    claims,
		Signature: parts[2],
	}
	if alg, ok := tok.Header["alg"].(string); ok {
		out.Algorithm = alg
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.UTC()
		out.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.UTC()
		out.IssuedAt = &t
	}
	return out, nil
}

// VerifyJWT checks an HMAC-signed token against secret and returns its
// claims. Signature mismatches and rejected claims fail with
// DecryptionError; structurally broken tokens fail with FormatError.
func VerifyJWT(token, secret string) (map[string]any, error) {
	const op = "jwt.verify"
	if secret == "" {
		return nil, toolerr.New(toolerr.KindInvalidArgument, op, "secret must not be empty")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods(hmacMethods))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, toolerr.Wrap(toolerr.KindFormat, op, "malformed token", err)
		}
		return nil, toolerr.Wrap(toolerr.KindDecryption, op, "verification failed", err)
	}
	return claims, nil
}

// SignJWT signs the JSON object claimsJSON with an HMAC algorithm
// (HS256, HS384 or HS512; empty means HS256). Missing exp and iat claims
// default to one hour from now and now.
func SignJWT(claimsJSON, secret, algorithm string) (string, error) {
	const op = "jwt.sign"
	if secret == "" {
		return "", toolerr.New(toolerr.KindInvalidArgument, op, "secret must not be empty")
	}

	var method jwt.SigningMethod
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return "", toolerr.Newf(toolerr.KindInvalidArgument, op, "unsupported algorithm %q", algorithm)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal([]byte(claimsJSON), &claims); err != nil {
		return "", toolerr.Syntax(op, "claims must be a JSON object: "+err.Error(), -1, err)
	}
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	now := time.Now()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = now.Add(time.Hour).Unix()
	}
	if _, ok := claims["iat"]; !ok {
		claims["iat"] = now.Unix()
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "signing failed", err)
	}
	return signed, nil
}
