// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/salonbook/internal/platform/apperr"
	"github.com/taibuivan/salonbook/internal/platform/ctxutil"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/platform/validate"
	"github.com/taibuivan/salonbook/pkg/convert"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a numeric URL parameter.

Returns:
  - error: apperr.NotFound(resource) when the parameter is not a positive integer
*/
func ID(request *http.Request, name, resource string) (int64, error) {
	id, ok := convert.ToInt64(chi.URLParam(request, name))
	if !ok || id < 1 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Unauthenticated.")
	}
	return claims, nil
}
