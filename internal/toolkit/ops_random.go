package toolkit

import (
	"github.com/RowanDark/devkit/internal/random"
)

type randomStringParams struct {
	Length         int    `json:"length" validate:"gte=0,lte=4096" jsonschema:"minimum=0,maximum=4096,default=16"`
	Uppercase      bool   `json:"uppercase" jsonschema:"default=true"`
	Lowercase      bool   `json:"lowercase" jsonschema:"default=true"`
	Numbers        bool   `json:"numbers" jsonschema:"default=true"`
	Symbols        bool   `json:"symbols,omitempty"`
	ExcludeSimilar bool   `json:"exclude_similar,omitempty"`
	Custom         string `json:"custom,omitempty" jsonschema:"description=Charset that replaces the class flags"`
	Secure         bool   `json:"secure,omitempty" jsonschema:"description=Draw from crypto/rand"`
}

type passwordParams struct {
	Length int  `json:"length" validate:"gte=0,lte=1024" jsonschema:"minimum=0,maximum=1024,default=12"`
	Secure bool `json:"secure,omitempty" jsonschema:"description=Draw from crypto/rand"`
}

type uuidParams struct {
	Version int `json:"version" validate:"oneof=4 7" jsonschema:"enum=4,enum=7,default=4"`
}

func init() {
	defaults := random.DefaultGenerateOptions()
	randomString := newOp("random_string", CategoryGenerate, "Generate a random string from selected character classes",
		randomStringParams{
			Length:    defaults.Length,
			Uppercase: defaults.Uppercase,
			Lowercase: defaults.Lowercase,
			Numbers:   defaults.Numbers,
		},
		func(_ []byte, p randomStringParams) ([]byte, error) {
			return text(random.GenerateString(random.GenerateOptions(p)))
		})

	password := newOp("password_generate", CategoryGenerate, "Generate a password without look-alike characters",
		passwordParams{Length: random.DefaultPasswordLength},
		func(_ []byte, p passwordParams) ([]byte, error) {
			if p.Secure {
				return text(random.GenerateSecurePassword(p.Length))
			}
			return text(random.GeneratePassword(p.Length))
		})

	strength := simpleOp("password_strength", CategoryGenerate, "Score password strength with suggestions",
		func(in []byte) ([]byte, error) {
			return jsonResult(random.CheckPasswordStrength(string(in)))
		})

	uuidGen := newOp("uuid_generate", CategoryGenerate, "Generate a version 4 or 7 UUID",
		uuidParams{Version: 4},
		func(_ []byte, p uuidParams) ([]byte, error) {
			return text(random.UUID(p.Version))
		})

	ulidGen := simpleOp("ulid_generate", CategoryGenerate, "Generate a ULID",
		func([]byte) ([]byte, error) {
			return []byte(random.ULID()), nil
		})

	mustRegister(randomString, password, strength, uuidGen, ulidGen)
}
