// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

import "errors"

// ErrEncodingFailure marks failures of the external audio encoder. Callers
// match with errors.Is and continue with a nil audio payload.
var ErrEncodingFailure = errors.New("audio encoding failure")
