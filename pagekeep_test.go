package pagekeep_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagekeep.Errorf(pagekeep.ENOTFOUND, "document %q not found", "doc-1")

	assert.Equal(t, pagekeep.ENOTFOUND, pagekeep.ErrorCode(err))
	assert.Equal(t, "document \"doc-1\" not found", pagekeep.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagekeep.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagekeep.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("listing content: %w", pagekeep.Errorf(pagekeep.EUNAVAILABLE, "server unreachable"))

	assert.Equal(t, pagekeep.EUNAVAILABLE, pagekeep.ErrorCode(err))
	assert.Equal(t, "server unreachable", pagekeep.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, pagekeep.EINTERNAL, pagekeep.ErrorCode(err))
	assert.Equal(t, "Internal error.", pagekeep.ErrorMessage(err))
}
