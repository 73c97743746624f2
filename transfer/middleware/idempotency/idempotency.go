// Package idempotency makes tagged endpoints safe to retry. A request
// carrying a key that already completed gets the stored response back
// without running the handler again.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"encore.app/transfer/model"
)

const (
	Header       = "X-Idempotency-Key"
	maxKeyLength = 128
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

//encore:middleware target=tag:idempotency
func IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	key, err := extractKey(req)
	if err != nil {
		return middleware.Response{Err: err}
	}
	ctx := req.Context()
	cacheKey := model.IdempotencyKey{Resource: strings.Trim(req.Data().Path, "/"), Key: key}
	digest := bodyDigest(req)

	// Claiming the key and checking for an earlier request is one atomic step.
	claimErr := IdempotencyCache.SetIfNotExists(ctx, cacheKey, model.IdempotencyCacheEntry{
		Status:          model.IdempotencyProcessing,
		RequestBodyHash: digest,
		CreatedAt:       time.Now(),
	})
	switch {
	case claimErr == nil:
		return run(ctx, req, next, cacheKey, digest)
	case errors.Is(claimErr, cache.KeyExists):
		entry, err := IdempotencyCache.Get(ctx, cacheKey)
		if errors.Is(err, cache.Miss) {
			return middleware.Response{Err: &errs.Error{Code: errs.Aborted, Message: "idempotency key expired while checking; retry the request"}}
		}
		if err != nil {
			rlog.Error("failed to read idempotency entry", "key", key, "error", err)
			return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "failed to check idempotency"}}
		}
		return replay(req, entry, digest, key)
	default:
		rlog.Error("failed to claim idempotency key", "key", key, "error", claimErr)
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "failed to check idempotency"}}
	}
}

// extractKey returns the trimmed key header. Keys are limited to a safe
// character set because they become part of the cache key.
func extractKey(req middleware.Request) (string, *errs.Error) {
	var key string
	if headers := req.Data().Headers; headers != nil {
		key = strings.TrimSpace(headers.Get(Header))
	}
	switch {
	case key == "":
		return "", &errs.Error{Code: errs.InvalidArgument, Message: Header + " header is required"}
	case len(key) > maxKeyLength:
		return "", &errs.Error{Code: errs.InvalidArgument, Message: Header + " header is too long"}
	case !keyPattern.MatchString(key):
		return "", &errs.Error{Code: errs.InvalidArgument, Message: Header + " header contains invalid characters"}
	}
	return key, nil
}

// bodyDigest fingerprints the decoded request payload for conflict detection.
func bodyDigest(req middleware.Request) string {
	payload := req.Data().Payload
	if payload == nil {
		return ""
	}
	body, err := json.Marshal(payload)
	if err != nil {
		rlog.Error("failed to marshal request body", "error", err)
		return ""
	}
	return digestOf(body)
}

func digestOf(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func run(ctx context.Context, req middleware.Request, next middleware.Next, cacheKey model.IdempotencyKey, digest string) middleware.Response {
	resp := next(req)
	if resp.Err != nil {
		// The key is released so the client can retry after a failure.
		if _, err := IdempotencyCache.Delete(ctx, cacheKey); err != nil {
			rlog.Error("failed to release idempotency key", "key", cacheKey.Key, "error", err)
		}
		return resp
	}

	entry := model.IdempotencyCacheEntry{
		Status:          model.IdempotencyCompleted,
		RequestBodyHash: digest,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if resp.Payload != nil {
		body, err := json.Marshal(resp.Payload)
		if err != nil {
			rlog.Error("failed to marshal response for replay", "key", cacheKey.Key, "error", err)
			return resp
		}
		entry.Response = body
	}
	if err := IdempotencyCache.Set(ctx, cacheKey, entry); err != nil {
		rlog.Error("failed to store response for replay", "key", cacheKey.Key, "error", err)
	}
	rlog.Debug("idempotent request completed", "resource", cacheKey.Resource, "key", cacheKey.Key)
	return resp
}

// replay answers a request whose key was seen before.
func replay(req middleware.Request, entry model.IdempotencyCacheEntry, digest, key string) middleware.Response {
	if err := checkConflict(entry, digest); err != nil {
		return middleware.Response{Err: err}
	}
	switch entry.Status {
	case model.IdempotencyProcessing:
		return inProgress(key)
	case model.IdempotencyCompleted:
		if payload, ok := decodeResponse(req, entry.Response); ok {
			rlog.Info("replaying stored response", "key", key)
			return middleware.Response{Payload: payload}
		}
		rlog.Error("stored response is unusable", "key", key)
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "stored response for idempotency key is unusable"}}
	default:
		rlog.Warn("unknown idempotency status", "key", key, "status", entry.Status)
		return middleware.Response{Err: &errs.Error{Code: errs.Internal, Message: "failed to check idempotency"}}
	}
}

func checkConflict(entry model.IdempotencyCacheEntry, digest string) *errs.Error {
	if digest != "" && entry.RequestBodyHash != "" && digest != entry.RequestBodyHash {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

func inProgress(key string) middleware.Response {
	rlog.Info("concurrent idempotent request", "key", key)
	return middleware.Response{Err: &errs.Error{Code: errs.Aborted, Message: "request with this idempotency key is still being processed"}}
}

// decodeResponse rebuilds the endpoint's response type from stored JSON.
func decodeResponse(req middleware.Request, body json.RawMessage) (any, bool) {
	if len(body) == 0 {
		return nil, false
	}
	api := req.Data().API
	if api == nil || api.ResponseType == nil {
		return nil, false
	}
	t := api.ResponseType
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	value := reflect.New(t).Interface()
	if err := json.Unmarshal(body, value); err != nil {
		return nil, false
	}
	return value, true
}
