/*
Package randx provides cryptographically secure random identifiers.

It generates the Base62-encoded object keys under which uploaded images are
stored, keeping stored names unguessable and collision-free in practice.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the number of characters in the Base62 set (62).
	Base62Len = int64(len(Base62Chars))

	// ObjectKeyRandomLength is the length of the random part of an object key.
	// 20 Base62 characters give roughly 119 bits of entropy.
	ObjectKeyRandomLength = 20
)

// base62String returns a random Base62 string of the given length.
func base62String(length int) (string, error) {
	result := make([]byte, length)

	for i := range length {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random base62 character: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ObjectKey builds a storage object key "<folder>/<random><ext>". The ext
// must include its leading dot (".png"); an empty folder yields a root key.
func ObjectKey(folder, ext string) (string, error) {
	name, err := base62String(ObjectKeyRandomLength)
	if err != nil {
		return "", err
	}

	if folder == "" {
		return name + ext, nil
	}

	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), name, ext), nil
}

// IsBase62 reports whether every character of s belongs to the Base62 set.
func IsBase62(s string) bool {
	for _, char := range s {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}
	return len(s) > 0
}
