package normdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/normdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := normdoc.Errorf(normdoc.EINVALID, "category %q is not supported", "books")

	assert.Equal(t, normdoc.EINVALID, normdoc.ErrorCode(err))
	assert.Equal(t, "category \"books\" is not supported", normdoc.ErrorMessage(err))
}

func TestErrorf_WrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := normdoc.Errorf(normdoc.EFETCH, "fetch failed: %w", cause).WithURL("https://meganorm.ru/a.html")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, normdoc.EFETCH, normdoc.ErrorCode(err))
	assert.Equal(t, "https://meganorm.ru/a.html", normdoc.ErrorURL(err))
	assert.Equal(t, "fetch failed: connection refused (url=https://meganorm.ru/a.html)", err.Error())
}

func TestErrorCode_WrappedApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", normdoc.Errorf(normdoc.EEXTRACT, "bad markup"))

	assert.Equal(t, normdoc.EEXTRACT, normdoc.ErrorCode(err))
	assert.Equal(t, "bad markup", normdoc.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, normdoc.EINTERNAL, normdoc.ErrorCode(err))
	assert.Equal(t, "Internal error.", normdoc.ErrorMessage(err))
	assert.Empty(t, normdoc.ErrorURL(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, normdoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, normdoc.ErrorMessage(nil))
}
