// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	"github.com/taibuivan/salonbook/internal/platform/ctxutil"
	"github.com/taibuivan/salonbook/internal/platform/respond"
	"github.com/taibuivan/salonbook/internal/platform/sec"
)

// MessageUnauthenticated is the 401 message every protected route returns.
const MessageUnauthenticated = "Unauthenticated."

// TokenVerifier defines what the middleware needs to accept a bearer token.
//
// The stub API implements it on top of [sec.TokenService] plus its revocation
// list, so a logged-out token is rejected even before it expires.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or rejected token: 401.
//  3. Otherwise [*sec.AuthClaims] is injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, strings.TrimSpace(constants.BearerPrefix)) || tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized(MessageUnauthenticated))
				return
			}

			claims, err := verifier.VerifyToken(request.Context(), tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized(MessageUnauthenticated))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized(MessageUnauthenticated))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
