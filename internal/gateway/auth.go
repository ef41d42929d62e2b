// internal/gateway/auth.go
// SessionAuthenticator implements Authenticator (spec §4.8 "Handshake",
// §4.7 step 3): it resolves a handshake session token to an appId via JWT
// and answers permission-group membership checks against a configured
// per-app grant table. Grounded on pkg/auth's Signer/Verifier pair, reused
// here purely as a verifier -- tokens are expected to be minted by an
// external session-issuing component, not by the gateway itself.
package gateway

import (
	"context"
	"sync"

	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/pkg/auth"
)

// SessionAuthenticator resolves session tokens and permission grants.
type SessionAuthenticator struct {
	verifier *auth.Verifier

	mu     sync.RWMutex
	grants map[string]map[string]bool // appId -> permission group -> granted
}

// NewSessionAuthenticator returns an authenticator verifying HMAC-signed
// session tokens with secret, optionally pinning the expected issuer.
func NewSessionAuthenticator(secret []byte, issuer string) *SessionAuthenticator {
	return &SessionAuthenticator{
		verifier: auth.NewVerifier(secret, issuer),
		grants:   make(map[string]map[string]bool),
	}
}

// ResolveSession validates sessionToken and extracts the appId from its
// "sub" claim. A malformed, expired, or wrong-issuer token fails the
// handshake (spec §4.8 "On failure, the connection is closed immediately").
func (a *SessionAuthenticator) ResolveSession(_ context.Context, sessionToken string) (appID string, ok bool) {
	if sessionToken == "" {
		return "", false
	}
	claims, err := a.verifier.ParseAndVerify(sessionToken)
	if err != nil {
		logging.Sugar().Debugw("auth: session resolution failed", "err", err)
		return "", false
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", false
	}
	return sub, true
}

// CheckPermissionGroup reports whether appId has been granted group.
func (a *SessionAuthenticator) CheckPermissionGroup(_ context.Context, appID, group string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grants[appID][group]
}

// GrantPermissionGroup records that appId is authorized under group. This is
// the configuration surface an operator (or a future admin API) uses to
// populate the permission table the spec assumes already exists.
func (a *SessionAuthenticator) GrantPermissionGroup(appID, group string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grants[appID] == nil {
		a.grants[appID] = make(map[string]bool)
	}
	a.grants[appID][group] = true
}

// RevokePermissionGroup undoes a prior grant.
func (a *SessionAuthenticator) RevokePermissionGroup(appID, group string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.grants[appID], group)
}
