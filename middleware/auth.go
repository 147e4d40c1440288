package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

type JSONWebKey struct {
	Kty string `json:"kty"`
	E   string `json:"e"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
}

type Jwks struct {
	Keys []JSONWebKey `json:"keys"`
}

var (
	jwksKeyOnce sync.Once
	jwksKey     *rsa.PublicKey
	jwksKeyErr  error
)

// realmPublicKey fetches and caches the realm signing key from the
// configured JWKS endpoint.
func realmPublicKey() (*rsa.PublicKey, error) {
	jwksKeyOnce.Do(func() {
		jwksKey, jwksKeyErr = fetchRealmPublicKey(config.GetString("auth.jwksUrl"))
	})
	return jwksKey, jwksKeyErr
}

func fetchRealmPublicKey(jwksURL string) (*rsa.PublicKey, error) {
	resp, err := http.Get(jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from JWKS endpoint: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWKS response body: %w", err)
	}

	var jwks Jwks
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JWKS JSON: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return nil, fmt.Errorf("no keys found in JWKS")
	}

	key := jwks.Keys[0]
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes).Int64()

	return &rsa.PublicKey{N: n, E: int(e)}, nil
}

// tokenClaims are the identity claims carried in the access token.
type tokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// parseToken decodes the claims of a bearer token. Signature
// verification is trusted to the upstream gateway unless
// auth.verifySignatures is enabled.
func parseToken(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if !config.GetBool("auth.verifySignatures") {
		_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
		if err != nil {
			return nil, err
		}
		return claims, nil
	}

	key, err := realmPublicKey()
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Paths that never require an identity.
var skipAuthPaths = map[string]bool{
	"/v1/health":  true,
	"/v1/metrics": true,
}

// Auth resolves the bearer token of every request into a full caller
// identity, or rejects the request with 401. The identity is either
// fully populated with an active account or nothing at all.
func Auth(authClient client.IAuthClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipAuthPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization token")
			return
		}
		fields := strings.Fields(header)
		tokenString := fields[len(fields)-1]

		claims, err := parseToken(tokenString)
		if err != nil {
			logger.Warn("Failed to parse token", zap.Error(err))
			abortUnauthorized(c, "invalid token")
			return
		}
		if claims.PreferredUsername == "" {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := authClient.GetUser(c, claims.PreferredUsername)
		if err != nil {
			logger.Warn("Failed to resolve user",
				zap.String("username", claims.PreferredUsername),
				zap.Error(err))
			abortUnauthorized(c, "invalid user")
			return
		}
		if !user.IsActive() {
			abortUnauthorized(c, bff_errors.ErrUserNotActive.Error())
			return
		}

		c.Set("identity", model.Identity{
			ID:         user.ID,
			Username:   user.Username,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			RealmRoles: claims.RealmAccess.Roles,
		})
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.APIResponse{
		Code:     http.StatusUnauthorized,
		ErrorMsg: message,
		Result:   "",
	})
}
