package docdex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorCode(nil))
	})

	t.Run("domain error", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.ENOTFOUND, "project %q not found", "missing")
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("store: %w", docdex.Errorf(docdex.EINVALID, "bad input"))
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("non-domain error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorMessage(nil))
	})

	t.Run("domain error", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.ENOTFOUND, "project %q not found", "missing")
		assert.Equal(t, `project "missing" not found`, docdex.ErrorMessage(err))
	})

	t.Run("non-domain error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docdex.ErrorMessage(errors.New("boom")))
	})
}
