package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"ghup/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
			want: 1,
		},
		{
			name: "application error",
			err:  errors.New(errors.ErrTagExists, "tag already exists"),
			want: 1,
		},
		{
			name: "git invocation failure",
			err: errors.New(errors.ErrToolFailed, "git exited with status 128").
				WithContext("tool", "git"),
			want: 2,
		},
		{
			name: "non-git tool failure",
			err: errors.New(errors.ErrToolFailed, "pdflatex exited with status 1").
				WithContext("tool", "pdflatex"),
			want: 1,
		},
		{
			name: "git failure wrapped",
			err: fmt.Errorf("push step: %w",
				errors.New(errors.ErrToolFailed, "git exited with status 1").
					WithContext("tool", "git")),
			want: 2,
		},
		{
			name: "missing tool",
			err:  errors.New(errors.ErrToolMissing, "git not found in PATH").WithContext("tool", "git"),
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
