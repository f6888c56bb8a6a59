package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapWithCode(t *testing.T) {
	err := WrapWithCode(ErrUpstream, CodeSend, "failed to send reply")

	assert.Equal(t, "failed to send reply: upstream error", err.Error())
	assert.Equal(t, CodeSend, GetCode(err))
	assert.Equal(t, "failed to send reply", GetMessage(err))
	assert.True(t, IsUpstream(err))
	assert.Nil(t, WrapWithCode(nil, CodeSend, "ignored"))
}

func TestCodeSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("pass: %w", Wrap(ErrNotFound, "inbox item C1"))

	assert.True(t, IsNotFound(err))
	assert.Empty(t, GetCode(err))
	assert.Equal(t, "inbox item C1", GetMessage(err))
	assert.Equal(t, "plain", GetMessage(errors.New("plain")))
	assert.Empty(t, GetMessage(nil))
}
