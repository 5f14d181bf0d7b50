// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterRoutesHealthzWithoutMiddlewareRejection(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	chiMW := NewChiMiddleware(DefaultChiMiddlewareConfig())
	router := NewRouter(h, chiMW)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRoundTripsFileThroughWildcardSegment(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	chiMW := NewChiMiddleware(DefaultChiMiddlewareConfig())
	router := NewRouter(h, chiMW)

	putReq := httptest.NewRequest(http.MethodPut, "/api/v1/files/album/radiohead/ok-computer", bytes.NewReader([]byte("payload")))
	putRec := httptest.NewRecorder()
	router.ServeHTTP(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/files/album/radiohead/ok-computer", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)
	require.Equal(t, "payload", getRec.Body.String())
}

func TestRouterReturns404ForUnknownRoute(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	chiMW := NewChiMiddleware(DefaultChiMiddlewareConfig())
	router := NewRouter(h, chiMW)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
