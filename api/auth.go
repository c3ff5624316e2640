/*
auth.go - Shared-password gate and session middleware

PURPOSE:
  The tool is guarded by one administrator password. Its bcrypt hash comes
  from the environment (PASSWORD_HASH); a successful POST /api/login issues
  an opaque session token that all other /api routes require via the
  Authorization header.

  This mirrors the deployment model the tool is built for: one password
  shared by the admins of a small organization. There are no per-user
  accounts and no roles; anyone past the gate can do everything.

TOKENS:
  Random 32-byte hex values held in memory. Restarting the server logs
  everyone out, which is acceptable for this tool. Token comparison is
  constant time.

DISABLING:
  An empty PASSWORD_HASH disables the gate entirely (dev mode). The engine
  itself is auth-agnostic either way.

SEE ALSO:
  - server.go: Where the middleware is mounted
*/
package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// SESSION GATE
// =============================================================================

type sessionGate struct {
	passwordHash []byte

	mu     sync.RWMutex
	tokens map[string]bool
}

func newSessionGate(passwordHash string) *sessionGate {
	return &sessionGate{
		passwordHash: []byte(passwordHash),
		tokens:       make(map[string]bool),
	}
}

// enabled reports whether the gate is active. No configured hash means the
// whole surface is open (development mode).
func (g *sessionGate) enabled() bool {
	return len(g.passwordHash) > 0
}

func (g *sessionGate) login(password string) (string, bool) {
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", false
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", false
	}
	token := hex.EncodeToString(buf)

	g.mu.Lock()
	g.tokens[token] = true
	g.mu.Unlock()
	return token, true
}

func (g *sessionGate) valid(token string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for t := range g.tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return true
		}
	}
	return false
}

// =============================================================================
// HANDLERS & MIDDLEWARE
// =============================================================================

// Login checks the shared password and issues a session token.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.gate.enabled() {
		writeJSON(w, http.StatusOK, LoginResponse{Token: ""})
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, ok := h.gate.login(req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Incorrect password", nil)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// requireSession blocks requests lacking a valid session token. Mounted on
// everything under /api except /api/login.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.gate.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || !h.gate.valid(token) {
			writeError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
