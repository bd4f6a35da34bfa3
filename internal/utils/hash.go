// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of token.
//
// Session tokens are stored in key-value backends under this digest so that
// the raw bearer string never appears in key names, dumps or MONITOR output.
//
// Example usage:
//
//	key := "session:" + utils.HashToken(rawToken)
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
