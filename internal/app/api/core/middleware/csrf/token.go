package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// A token is transported masked: a random one-time key followed by the secret XOR key.
// Every rendered form gets a different representation of the same secret.

func randomBytes(length int) []byte {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand is unavailable: " + err.Error())
	}
	return b
}

// mask returns the base64 encoded key||secret^key representation of the secret.
func mask(secret []byte) string {
	key := randomBytes(len(secret))
	masked := make([]byte, 2*len(secret))
	copy(masked, key)
	for i := range secret {
		masked[len(secret)+i] = secret[i] ^ key[i]
	}
	return base64.URLEncoding.EncodeToString(masked)
}

// unmask reverses mask. It returns nil for malformed or empty input.
func unmask(token string) []byte {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil || len(raw) == 0 || len(raw)%2 != 0 {
		return nil
	}

	n := len(raw) / 2
	secret := make([]byte, n)
	for i := 0; i < n; i++ {
		secret[i] = raw[i] ^ raw[n+i]
	}
	return secret
}

// tokensMatch reports whether both masked tokens carry the same, non-empty secret.
func tokensMatch(a, b string) bool {
	secretA, secretB := unmask(a), unmask(b)
	if secretA == nil || secretB == nil {
		return false
	}
	return subtle.ConstantTimeCompare(secretA, secretB) == 1
}
