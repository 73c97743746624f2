package idempotency

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.dev"
	"encore.dev/beta/errs"
	"encore.dev/middleware"

	"encore.app/transfer/model"
)

func createMiddlewareRequest(ctx context.Context, path string, headers http.Header, payload any) middleware.Request {
	return middleware.NewRequest(ctx, &encore.Request{
		Path:    path,
		Headers: headers,
		Payload: payload,
	})
}

func TestExtractKey(t *testing.T) {
	testCases := []struct {
		name          string
		headers       http.Header
		expectedKey   string
		expectedError string
	}{
		{
			name:        "valid_key",
			headers:     http.Header{Header: []string{"exec-2026-0001"}},
			expectedKey: "exec-2026-0001",
		},
		{
			name:        "surrounding_whitespace_trimmed",
			headers:     http.Header{Header: []string{"  key:42  "}},
			expectedKey: "key:42",
		},
		{
			name:        "first_value_wins",
			headers:     http.Header{Header: []string{"first", "second"}},
			expectedKey: "first",
		},
		{
			name:          "missing_header",
			headers:       http.Header{},
			expectedError: "header is required",
		},
		{
			name:          "whitespace_only",
			headers:       http.Header{Header: []string{"   "}},
			expectedError: "header is required",
		},
		{
			name:          "too_long",
			headers:       http.Header{Header: []string{strings.Repeat("k", maxKeyLength+1)}},
			expectedError: "too long",
		},
		{
			name:          "path_separator",
			headers:       http.Header{Header: []string{"a/b"}},
			expectedError: "invalid characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := createMiddlewareRequest(context.Background(), "/transfers/t-1/execute", tc.headers, nil)

			key, err := extractKey(req)

			if tc.expectedError != "" {
				require.NotNil(t, err)
				assert.Equal(t, errs.InvalidArgument, err.Code)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Empty(t, key)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expectedKey, key)
		})
	}
}

func TestBodyDigest(t *testing.T) {
	type executeBody struct {
		Secret string `json:"secret"`
	}
	path := "/transfers/t-1/execute"

	a := bodyDigest(createMiddlewareRequest(context.Background(), path, nil, &executeBody{Secret: "s1"}))
	b := bodyDigest(createMiddlewareRequest(context.Background(), path, nil, &executeBody{Secret: "s1"}))
	c := bodyDigest(createMiddlewareRequest(context.Background(), path, nil, &executeBody{Secret: "s2"}))

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Empty(t, bodyDigest(createMiddlewareRequest(context.Background(), path, nil, nil)))
	assert.Empty(t, digestOf(nil))
	assert.Equal(t, "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08", digestOf([]byte("test")))
}

func TestCheckConflict(t *testing.T) {
	testCases := []struct {
		name     string
		stored   string
		digest   string
		conflict bool
	}{
		{name: "matching", stored: "abc", digest: "abc"},
		{name: "stored_without_body", stored: "", digest: "abc"},
		{name: "request_without_body", stored: "abc", digest: ""},
		{name: "different_body", stored: "abc", digest: "xyz", conflict: true},
		{name: "case_sensitive", stored: "ABC", digest: "abc", conflict: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkConflict(model.IdempotencyCacheEntry{RequestBodyHash: tc.stored}, tc.digest)
			if tc.conflict {
				require.NotNil(t, err)
				assert.Contains(t, err.Error(), "idempotency key conflict")
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestReplay(t *testing.T) {
	type executeResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	newReq := func() middleware.Request {
		return middleware.NewRequest(context.Background(), &encore.Request{
			Path: "/transfers/t-1/execute",
			API:  &encore.APIDesc{ResponseType: reflect.TypeOf(&executeResponse{})},
		})
	}

	t.Run("completed_returns_stored_payload", func(t *testing.T) {
		resp := replay(newReq(), model.IdempotencyCacheEntry{
			Status:   model.IdempotencyCompleted,
			Response: []byte(`{"id":"t-1","status":"submitted"}`),
		}, "", "k")

		require.Nil(t, resp.Err)
		assert.Equal(t, &executeResponse{ID: "t-1", Status: "submitted"}, resp.Payload)
	})

	t.Run("processing_is_aborted", func(t *testing.T) {
		resp := replay(newReq(), model.IdempotencyCacheEntry{Status: model.IdempotencyProcessing}, "", "k")

		require.Error(t, resp.Err)
		assert.Equal(t, errs.Aborted, errs.Code(resp.Err))
		assert.Nil(t, resp.Payload)
	})

	t.Run("conflicting_body", func(t *testing.T) {
		resp := replay(newReq(), model.IdempotencyCacheEntry{
			Status:          model.IdempotencyCompleted,
			RequestBodyHash: "abc",
		}, "xyz", "k")

		assert.Equal(t, errs.InvalidArgument, errs.Code(resp.Err))
	})

	t.Run("unreadable_response", func(t *testing.T) {
		resp := replay(newReq(), model.IdempotencyCacheEntry{
			Status:   model.IdempotencyCompleted,
			Response: []byte(`{"id":`),
		}, "", "k")

		assert.Equal(t, errs.Internal, errs.Code(resp.Err))
	})
}

func TestIdempotencyMiddleware_MissingKey(t *testing.T) {
	req := createMiddlewareRequest(context.Background(), "/transfers/t-1/execute", http.Header{}, map[string]any{"secret": "s"})
	nextCalled := false
	next := func(req middleware.Request) middleware.Response {
		nextCalled = true
		return middleware.Response{Payload: map[string]any{"id": "t-1"}}
	}

	resp := IdempotencyMiddleware(req, next)

	require.Error(t, resp.Err)
	assert.Contains(t, resp.Err.Error(), "header is required")
	assert.False(t, nextCalled)
	assert.Nil(t, resp.Payload)
}
