package syncerr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "config with cause",
			err:  &ConfigError{Path: "config.json", Err: errors.New("unexpected EOF")},
			want: `config "config.json": unexpected EOF`,
		},
		{
			name: "config without cause",
			err:  &ConfigError{Path: "config.json"},
			want: `config "config.json" is invalid`,
		},
		{
			name: "not found",
			err:  &NotFoundError{Path: "/data/src"},
			want: `directory "/data/src" does not exist`,
		},
		{
			name: "io",
			err:  &IOError{Op: "stat", Path: "/data/src/a.txt", Err: os.ErrNotExist},
			want: "stat /data/src/a.txt: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestUnwrapThroughContext(t *testing.T) {
	err := fmt.Errorf("failed to build descriptors: %w",
		&IOError{Op: "stat", Path: "/x", Err: os.ErrPermission})

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "stat", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrPermission))

	cfgErr := fmt.Errorf("load: %w", &ConfigError{Path: "c.json", Err: os.ErrNotExist})
	assert.True(t, errors.Is(cfgErr, os.ErrNotExist))
}
