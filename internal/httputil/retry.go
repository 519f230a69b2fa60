// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Policy controls retry behavior for transient HTTP failures. The zero
// value is not useful; construct with NewPolicy or fill every field.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry.
	BaseDelay time.Duration

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64

	// Retryable decides whether a response (or transport error) is a
	// transient failure worth retrying. Exactly one of resp and err is
	// non-nil.
	Retryable func(resp *http.Response, err error) bool
}

// NewPolicy returns a Policy with the given shape and the default
// transient-failure predicate.
func NewPolicy(maxAttempts int, baseDelay time.Duration, multiplier float64) Policy {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if multiplier < 1 {
		multiplier = 2
	}
	return Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Multiplier:  multiplier,
		Retryable:   TransientFailure,
	}
}

// TransientFailure is the default retryable predicate: transport errors
// (timeouts, resets), HTTP 429, and HTTP 5xx. Other statuses — malformed
// queries, authentication failures — are permanent and not retried.
func TransientFailure(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

// Do executes the request, retrying transient failures with exponential
// backoff: BaseDelay, BaseDelay*Multiplier, and so on. Request bodies are
// rebuilt through GetBody on every attempt. On each retried response the
// body is drained and closed before sleeping. If the context
// is cancelled during a backoff wait, Do returns ctx.Err(). After
// exhausting attempts the last response or error is returned unchanged so
// the caller can classify it.
func (p Policy) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	delay := p.BaseDelay
	retryable := p.Retryable
	if retryable == nil {
		retryable = TransientFailure
	}

	for attempt := 1; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq.Body = body
		}
		resp, err := client.Do(attemptReq)

		if !retryable(resp, err) || attempt >= p.MaxAttempts {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
}
