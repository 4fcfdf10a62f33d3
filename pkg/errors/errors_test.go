package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinelInChain(t *testing.T) {
	wrapped := Wrap(ErrCacheMiss, ErrCacheMiss.Code, ErrCacheMiss.Status, "snapshot lookup")
	assert.True(t, errors.Is(wrapped, ErrCacheMiss))

	fmtWrapped := fmt.Errorf("reading snapshot: %w", ErrCacheMiss)
	assert.True(t, errors.Is(fmtWrapped, ErrCacheMiss))
}

func TestFromErrorUnwrapsTypedError(t *testing.T) {
	inner := Wrap(errors.New("boom"), ErrConflict.Code, ErrConflict.Status, "duplicate login id")
	outer := fmt.Errorf("saving account: %w", inner)

	e := FromError(outer)
	require.NotNil(t, e)
	assert.Equal(t, ErrConflict.Code, e.Code)
	assert.Equal(t, ErrConflict.Status, e.Status)
}

func TestFromErrorWrapsUnknownAsInternal(t *testing.T) {
	e := FromError(errors.New("boom"))
	require.NotNil(t, e)
	assert.Equal(t, ErrInternal.Code, e.Code)
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	c := Clone(ErrForbidden, "cohort scope mismatch")
	assert.Equal(t, ErrForbidden.Code, c.Code)
	assert.Equal(t, "cohort scope mismatch", c.Message)
	assert.Equal(t, "forbidden", ErrForbidden.Message)
}
