// Package toolkit exposes the data-transformation library as named
// operations that can be listed, run with string-keyed parameters, chained
// into pipelines and suggested by encoding detection.
//
// Every operation takes raw input bytes and returns raw output bytes.
// Operations that produce structured results (statistics, reports, query
// results) return them as JSON. Parameters are decoded into a typed struct
// per operation, defaulted, then validated; string values are coerced to
// the field type so command-line key=value pairs work unchanged.
//
// Available operations by category:
//
// Encode/decode:
//   - base64_encode / base64_decode, base64url_encode / base64url_decode
//   - url_encode / url_decode, html_encode / html_decode
//   - hex_encode / hex_decode, base58_encode / base58_decode
//   - unicode_inspect, unicode_from_char, unicode_to_char, unicode_normalize
//   - jwt_decode, jwt_sign, jwt_verify
//
// Hash:
//   - hash, hmac, md5_hash, sha1_hash, sha256_hash, sha512_hash
//
// Encrypt/decrypt:
//   - aes_encrypt / aes_decrypt, des_encrypt / des_decrypt
//
// JSON:
//   - json_format / json_minify, json_validate, json_escape / json_unescape
//   - json_stats, json_query, json_set, json_delete
//   - json_to_yaml / yaml_to_json, json_schema_validate
//
// Text:
//   - text_stats, text_case, text_dedupe, text_sort, text_replace, text_clean
//
// Generate:
//   - random_string, password_generate, password_strength
//   - uuid_generate, ulid_generate
//
// Example:
//
//	pipeline := &toolkit.Pipeline{
//		Operations: []toolkit.OperationConfig{
//			{Name: "json_minify"},
//			{Name: "base64_encode"},
//		},
//		Reversible: true,
//	}
//	out, err := pipeline.Execute(ctx, []byte(`{ "a": 1 }`))
package toolkit
