package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrTagExists, "tag already exists")
	assert.Equal(t, "[TAG_EXISTS] tag already exists", err.Error())

	err = NewWithDetails(ErrToolFailed, "git exited with status 128", "fatal: not a repository")
	assert.Equal(t, "[TOOL_FAILED] git exited with status 128: fatal: not a repository", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrConfigParse, "failed to parse settings file", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrConfigParse, GetCode(err))
}

func TestGetCodeWalksWrapChain(t *testing.T) {
	inner := New(ErrNothingToCommit, "nothing to commit")
	outer := fmt.Errorf("workflow failed: %w", inner)

	assert.Equal(t, ErrNothingToCommit, GetCode(outer))
	assert.True(t, HasCode(outer, ErrNothingToCommit))
	assert.False(t, HasCode(outer, ErrTagExists))
}

func TestGetCodeOnPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
	assert.False(t, HasCode(nil, ErrToolFailed))
}

func TestContext(t *testing.T) {
	err := New(ErrToolFailed, "git exited with status 1").
		WithContext("tool", "git").
		WithContext("exit_code", 1)

	tool, ok := GetContext(err, "tool")
	assert.True(t, ok)
	assert.Equal(t, "git", tool)

	_, ok = GetContext(err, "missing")
	assert.False(t, ok)

	wrapped := fmt.Errorf("outer: %w", err)
	tool, ok = GetContext(wrapped, "tool")
	assert.True(t, ok)
	assert.Equal(t, "git", tool)
}
