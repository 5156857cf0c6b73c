package wikigraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSiteInfo(t *testing.T) {
	si, err := ReadSiteInfo("testdata/chains.xml.bz2", 248)
	require.NoError(t, err)
	assert.Equal(t, "Wikipedia", si.SiteName)
	assert.Equal(t, "https://simple.wikipedia.org/wiki/Main_Page", si.Base)
	require.Len(t, si.Namespaces, 2)
	assert.Equal(t, Namespace{Key: 1, Case: "first-letter", Value: "Talk"}, si.Namespaces[1])

	name, ok := si.Namespace(0)
	assert.True(t, ok)
	assert.Equal(t, "", name)
	name, _ = si.Namespace(1)
	assert.Equal(t, "Talk", name)
	_, ok = si.Namespace(14)
	assert.False(t, ok)
}

func TestReadSiteInfoNoHeader(t *testing.T) {
	// An empty range has no header to read.
	_, err := ReadSiteInfo("testdata/small.xml.bz2", 0)
	assert.Error(t, err)
}
