/*
 *    Copyright 2025 Jeff Galyan
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package middleware

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	q "github.com/jrgalyan/quokka"
)

var jwtClaimsKey = q.NewExtKey("jwt_claims")

// JWTClaims retrieves the claims a prior JWTAuth middleware attached to req.
func JWTClaims(req *q.Request) (jwt.MapClaims, bool) {
	return q.Extension[jwt.MapClaims](req, jwtClaimsKey)
}

// JWTConfig configures the JWTAuth middleware. Only Bearer tokens are
// considered; requests without one fail with Unauthorized unless Optional
// is set.
type JWTConfig struct {
	Keyfunc  jwt.Keyfunc
	Issuer   string
	Audience string
	Skew     time.Duration
	Optional bool
}

// JWTAuth validates a Bearer JWT and attaches its claims to the request,
// retrievable downstream with JWTClaims. On failure it short-circuits the
// chain with an Unauthorized error.
func JWTAuth(cfg JWTConfig) q.Middleware {
	if cfg.Skew == 0 {
		cfg.Skew = 30 * time.Second
	}
	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			authz := req.Header("Authorization")
			if authz == "" {
				if cfg.Optional {
					return next(req)
				}
				return nil, unauthorized("missing Authorization header")
			}
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return nil, unauthorized("invalid Authorization scheme")
			}

			opts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"HS256", "HS384", "HS512", "RS256", "RS384", "RS512", "ES256", "EdDSA"}),
				jwt.WithLeeway(cfg.Skew),
			}
			if cfg.Issuer != "" {
				opts = append(opts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				opts = append(opts, jwt.WithAudience(cfg.Audience))
			}
			parser := jwt.NewParser(opts...)

			tok, err := parser.ParseWithClaims(parts[1], jwt.MapClaims{}, cfg.Keyfunc)
			if err != nil {
				return nil, unauthorized("token parse/verify failed: " + err.Error())
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok || !tok.Valid {
				return nil, unauthorized("invalid token claims")
			}

			return next(q.WithExtension(req, jwtClaimsKey, claims))
		}
	}
}

func unauthorized(desc string) error {
	return q.NewUnauthorized(desc)
}
