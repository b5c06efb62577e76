package lti

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JaimeStill/aspiredu/internal/config"
)

// Keys signs platform tokens and publishes the matching public key.
type Keys struct {
	id      string
	private *rsa.PrivateKey
}

// NewKeys wraps an RSA key published under id.
func NewKeys(id string, key *rsa.PrivateKey) *Keys {
	return &Keys{id: id, private: key}
}

// LoadKeys reads the PEM key named by cfg, or generates one when none is set.
func LoadKeys(cfg *config.LTIConfig) (*Keys, error) {
	if cfg.PrivateKeyFile == "" {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("generate lti key: %w", err)
		}
		return NewKeys(cfg.KeyID, key), nil
	}

	data, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read lti key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse lti key: %w", err)
	}
	return NewKeys(cfg.KeyID, key), nil
}

// Sign returns claims as an RS256 JWT carrying the key id.
func (k *Keys) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = k.id
	return token.SignedString(k.private)
}

// Parse verifies raw against the public key and decodes it into claims.
func (k *Keys) Parse(raw string, claims jwt.Claims, opts ...jwt.ParserOption) error {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return &k.private.PublicKey, nil
	}, opts...)
	return err
}

// JWKS returns the public key set tools use to verify launches.
func (k *Keys) JWKS() jose.JSONWebKeySet {
	return jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{{
			Key:       &k.private.PublicKey,
			KeyID:     k.id,
			Algorithm: string(jose.RS256),
			Use:       "sig",
		}},
	}
}
