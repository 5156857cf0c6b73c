package wikigraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chainsDump  = "testdata/chains.xml.bz2"
	chainsIndex = "testdata/chains-index.txt.bz2"
)

func TestPageText(t *testing.T) {
	text, ok, err := PageText(chainsDump, chainsIndex, "Cherry")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "See [[apple]], [[ünïcode]] and [[]].", text)

	text, ok, err = PageText(chainsDump, chainsIndex, "Empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", text)
}

func TestPageTextMissing(t *testing.T) {
	_, _, err := PageText(chainsDump, chainsIndex, "Nothing here")
	assert.Equal(t, ErrNoSuchPage, err)
}

func TestPageAtWrongStream(t *testing.T) {
	// Elder is in the last stream, not the first one.
	p, err := PageAt(chainsDump, 972, "Elder")
	require.NoError(t, err)
	assert.Equal(t, "[[ärger]] [[ß-test|sharp]] [[Apple]]", p.Text)

	_, err = PageAt(chainsDump, 972, "Apple")
	assert.Equal(t, ErrNoSuchPage, err)
}

func TestRedirectTargets(t *testing.T) {
	targets, err := RedirectTargets(chainsDump, chainsIndex, "Durian")
	require.NoError(t, err)
	assert.Equal(t, []string{"banana"}, targets)

	targets, err = RedirectTargets(chainsDump, chainsIndex, "Apple")
	require.NoError(t, err)
	assert.Empty(t, targets)
}
