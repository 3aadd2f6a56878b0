// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package utils

import (
	"context"
	"log"
	"runtime/debug"
	"strings"
)

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether s is empty or whitespace-only.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Go spawns fn on a new goroutine with panic recovery. A panic in a
// background task must never take down the process; it is logged with a
// stack trace instead. The context is accepted so call sites read the same
// as other context-carrying calls, and for future lifecycle hooks.
func Go(ctx context.Context, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in background task: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
