//go:build darwin

package clip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	clipboardInfo = "osascript -e clipboard info"
	clipboardHTML = "osascript -e the clipboard as «class HTML»"
)

func TestDarwinBackendHasHTML(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   bool
	}{
		{"html offered", "«class HTML», 18, «class utf8», 2, string, 2", nil, true},
		{"text only", "«class utf8», 2, string, 2", nil, false},
		{"osascript fails", "", errors.New("exit status 1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := &fakeTools{outputs: map[string]string{clipboardInfo: tt.output}, err: tt.err}
			b := &darwinBackend{run: tools.run}

			assert.Equal(t, tt.want, b.Has(FormatHTML))
			assert.Equal(t, []string{clipboardInfo}, tools.argvs())
		})
	}
}

func TestDarwinBackendReadHTML(t *testing.T) {
	tools := &fakeTools{outputs: map[string]string{clipboardHTML: "«data HTML3C623E68693C2F623E»\n"}}
	b := &darwinBackend{run: tools.run}

	got, err := b.Read(FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "<b>hi</b>", string(got))
	assert.Equal(t, []string{clipboardHTML}, tools.argvs())
}

func TestDarwinBackendReadHTMLFailure(t *testing.T) {
	b := &darwinBackend{run: (&fakeTools{err: errors.New("exit status 1")}).run}
	_, err := b.Read(FormatHTML)
	assert.Error(t, err)
}

func TestDarwinBackendWriteHTML(t *testing.T) {
	tools := &fakeTools{}
	b := &darwinBackend{run: tools.run}
	items := []Item{NewHTMLItem("<b>hi</b>"), NewTextItem("hi")}

	require.NoError(t, b.Write(items))
	require.Len(t, tools.calls, 1)
	assert.Equal(t, "osascript", tools.calls[0].argv)
	assert.Equal(t, setClipboardScript(items), tools.calls[0].stdin)
}
