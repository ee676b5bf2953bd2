package format

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "circuit.cbor")
	require.NoError(t, WriteCache(path, c))

	got, err := ReadCache(path)
	require.NoError(t, err)
	require.Equal(t, c.Names, got.Names)
	require.Equal(t, c.Inputs, got.Inputs)
	require.Equal(t, c.Outputs, got.Outputs)
	require.Len(t, got.Gates, len(c.Gates))
	for i := range c.Gates {
		require.Equal(t, c.Gates[i].Kind, got.Gates[i].Kind)
		require.Equal(t, c.Gates[i].Args, got.Gates[i].Args)
	}
}

func TestCacheRejectsIncompatibleMajorVersion(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "circuit.cbor")
	require.NoError(t, WriteCache(path, c))

	saved := CacheVersion
	CacheVersion.Major++
	defer func() { CacheVersion = saved }()

	_, err = ReadCache(path)
	require.Error(t, err)
}
