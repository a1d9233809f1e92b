// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shortwave/pkg/uuid"
)

func TestNew(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.NotEqual(t, a, b)
	assert.True(t, uuid.Valid(a))
	assert.Equal(t, "7", a[14:15])
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("0190f3a2-7b1c-7d4e-8f00-123456789abc"))
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("{0190f3a2-7b1c-7d4e-8f00-123456789abc}"))
	assert.False(t, uuid.Valid("0190f3a27b1c7d4e8f00123456789abc"))
}
