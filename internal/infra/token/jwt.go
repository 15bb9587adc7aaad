package token

import (
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
)

// TokenTTL is the fixed validity window for issued tokens.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the custom payload carried alongside the registered claims.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Generator signs and verifies the HS256 bearer tokens.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: TokenTTL}
}

// Issue produces a signed JWT for the given user.
func (g *Generator) Issue(userID, username string) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: g.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	std := gojwt.Claims{
		Subject:  userID,
		Issuer:   g.issuer,
		IssuedAt: gojwt.NewNumericDate(now),
		Expiry:   gojwt.NewNumericDate(now.Add(g.ttl)),
	}
	custom := Claims{UserID: userID, Username: username}

	token, err := gojwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}

	return token, nil
}

// Verify checks the signature, issuer and expiry, returning the claims.
func (g *Generator) Verify(raw string) (*Claims, error) {
	parsed, err := gojwt.ParseSigned(raw, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	var std gojwt.Claims
	var custom Claims
	if err := parsed.Claims(g.secret, &std, &custom); err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if err := std.Validate(gojwt.Expected{Issuer: g.issuer, Time: time.Now().UTC()}); err != nil {
		return nil, fmt.Errorf("validate claims: %w", err)
	}

	return &custom, nil
}
