/*
Package pow implements the Proof-of-Work (PoW) mechanism gating account signup.

It manages the generation and validation of challenge nonces and the issuance
of short-lived proof tokens upon successful validation. A valid proof token is
required before a signup request is accepted.
*/
package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// TokenHeaderKey is the HTTP header used by the client to send the proof token.
	TokenHeaderKey = "X-PoW-Token"

	// ProofTokenDuration is the validity period of a proof token.
	ProofTokenDuration = 30 * time.Second

	// NonceExpiryDuration is the validity period of a challenge nonce.
	NonceExpiryDuration = 5 * time.Minute
)

// Manager owns the lifecycle of PoW challenges and proof tokens. It is
// concurrent-safe, using internal maps for active nonces and tokens.
type Manager struct {
	// difficulty is the required number of leading zeros in the proof hash.
	difficulty int

	// nonceStore holds active nonces and their expiration times.
	nonceStore map[string]time.Time

	// tokenStore holds issued proof tokens and their expiration times.
	tokenStore map[string]time.Time

	// mu protects nonceStore and tokenStore.
	mu sync.RWMutex
}

// NewManager creates a Manager with the given challenge difficulty and starts
// a background goroutine that evicts expired entries.
func NewManager(difficulty int) *Manager {
	mgr := &Manager{
		difficulty: difficulty,
		nonceStore: make(map[string]time.Time),
		tokenStore: make(map[string]time.Time),
	}

	go mgr.cleanupExpiredEntries()

	return mgr
}

// Difficulty returns the configured challenge difficulty, exposed to clients
// together with the nonce.
func (m *Manager) Difficulty() int {
	return m.difficulty
}

// GenerateNonce generates and stores a unique nonce for a PoW challenge.
func (m *Manager) GenerateNonce() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	nonce := uuid.New().String()
	m.nonceStore[nonce] = time.Now().Add(NonceExpiryDuration)
	return nonce
}

// ValidateProof validates the proof submitted by the client: the nonce must be
// known and unexpired, and SHA256(nonce+counter) must carry the required number
// of leading zeros. A successful proof consumes the nonce and issues a
// temporary proof token.
func (m *Manager) ValidateProof(nonce, counter string) (string, error) {
	m.mu.RLock()
	expiryTime, ok := m.nonceStore[nonce]
	m.mu.RUnlock()

	if !ok || time.Now().After(expiryTime) {
		return "", fmt.Errorf("nonce expired or invalid")
	}

	input := fmt.Sprintf("%s%s", nonce, counter)
	hash := sha256.Sum256([]byte(input))
	hashStr := hex.EncodeToString(hash[:])

	requiredPrefix := strings.Repeat("0", m.difficulty)
	if !strings.HasPrefix(hashStr, requiredPrefix) {
		return "", fmt.Errorf("proof does not meet difficulty requirement")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, stillExists := m.nonceStore[nonce]; !stillExists {
		return "", fmt.Errorf("nonce consumed by concurrent request")
	}

	delete(m.nonceStore, nonce)

	token := uuid.New().String()
	m.tokenStore[token] = time.Now().Add(ProofTokenDuration)
	return token, nil
}

// CheckProofToken reports whether the request carries a valid proof token, in
// either the X-PoW-Token header or the pow_token query parameter.
func (m *Manager) CheckProofToken(r *http.Request) bool {
	token := r.Header.Get(TokenHeaderKey)
	if token == "" {
		token = r.URL.Query().Get("pow_token")
	}

	if token == "" {
		return false
	}

	m.mu.RLock()
	expiryTime, ok := m.tokenStore[token]
	m.mu.RUnlock()

	if !ok || time.Now().After(expiryTime) {
		return false
	}

	return true
}

// cleanupExpiredEntries periodically evicts expired nonces and tokens.
func (m *Manager) cleanupExpiredEntries() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()

		for nonce, expiry := range m.nonceStore {
			if now.After(expiry) {
				delete(m.nonceStore, nonce)
			}
		}

		for token, expiry := range m.tokenStore {
			if now.After(expiry) {
				delete(m.tokenStore, token)
			}
		}
		m.mu.Unlock()
	}
}
