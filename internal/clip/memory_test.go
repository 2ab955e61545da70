package clip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReplacesContents(t *testing.T) {
	m := NewMemory(NewHTMLItem("<p>x</p>"), NewTextItem("x"))
	require.True(t, m.Has(FormatHTML))

	require.NoError(t, m.Write([]Item{NewTextItem("y")}))
	assert.False(t, m.Has(FormatHTML))
	assert.True(t, m.Has(FormatText))
	assert.Equal(t, 1, m.Writes())

	data, err := m.Read(FormatText)
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))

	data, err = m.Read(FormatHTML)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryRejectsUnknownFormat(t *testing.T) {
	m := NewMemory()
	err := m.Write([]Item{{Format: "image/png", Data: []byte{1}}})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, m.Writes())
}

func TestMemoryInjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewMemory(NewTextItem("x"))
	m.ReadErr = boom
	m.WriteErr = boom

	_, err := m.Read(FormatText)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Write(nil), boom)
}
