// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package utils

import (
	"fmt"
	"strconv"
)

// Option is a loosely-typed bag of per-session options (for example the
// negotiated audio encoding of a capture connection). Keys are dotted
// lowercase strings.
type Option map[string]interface{}

// GetString returns the option as a string, or an error when absent.
func (o Option) GetString(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", fmt.Errorf("option %q not found", key)
	}
	switch val := v.(type) {
	case string:
		return val, nil
	default:
		return fmt.Sprintf("%v", val), nil
	}
}

// GetInt returns the option as an int, or an error when absent or not
// convertible.
func (o Option) GetInt(key string) (int, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("option %q not found", key)
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		return strconv.Atoi(val)
	default:
		return 0, fmt.Errorf("option %q is not an int", key)
	}
}

// GetBool returns the option as a bool, defaulting to false when absent.
func (o Option) GetBool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
