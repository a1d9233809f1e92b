// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Account Constraints

const (
	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// MinPasswordLength matches the hosted identity provider the catalog
	// replaced, so existing habits keep working.
	MinPasswordLength = 6

	MaxNameLength = 80
)
