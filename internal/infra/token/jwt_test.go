package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	g := NewGenerator("test-secret", "leadhub")

	raw, err := g.Issue("user-1", "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := g.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewGenerator("secret-a", "leadhub")
	verifier := NewGenerator("secret-b", "leadhub")

	raw, err := issuer.Issue("user-1", "alice")
	assert.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuer := NewGenerator("test-secret", "other-service")
	verifier := NewGenerator("test-secret", "leadhub")

	raw, err := issuer.Issue("user-1", "alice")
	assert.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	g := NewGenerator("test-secret", "leadhub")

	_, err := g.Verify("not-a-token")
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	g := NewGenerator("test-secret", "leadhub")
	g.ttl = -time.Hour

	raw, err := g.Issue("user-1", "alice")
	assert.NoError(t, err)

	_, err = g.Verify(raw)
	assert.Error(t, err)
}
