//go:build windows

package clip

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func psArgv(script string) string {
	return "powershell.exe -NoProfile -NonInteractive -STA -Command " + script
}

func TestWindowsBackendHasHTML(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
		want   bool
	}{
		{"html offered", "True\r\n", nil, true},
		{"no html", "False\r\n", nil, false},
		{"powershell fails", "", errors.New("exit status 1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := &fakeTools{outputs: map[string]string{psArgv(psHasHTML): tt.output}, err: tt.err}
			b := &windowsBackend{run: tools.run}

			assert.Equal(t, tt.want, b.Has(FormatHTML))
			assert.Equal(t, []string{psArgv(psHasHTML)}, tools.argvs())
		})
	}
}

func TestWindowsBackendReadHTML(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(buildCFHTML("<b>hi</b>")))
	tools := &fakeTools{outputs: map[string]string{psArgv(psReadHTML): payload + "\r\n"}}
	b := &windowsBackend{run: tools.run}

	got, err := b.Read(FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "<b>hi</b>", string(got))
}

func TestWindowsBackendReadHTMLBadPayload(t *testing.T) {
	tools := &fakeTools{outputs: map[string]string{psArgv(psReadHTML): "not base64!"}}
	b := &windowsBackend{run: tools.run}

	_, err := b.Read(FormatHTML)
	assert.ErrorContains(t, err, "decode HTML data")
}

func TestWindowsBackendWriteHTML(t *testing.T) {
	tools := &fakeTools{}
	b := &windowsBackend{run: tools.run}

	require.NoError(t, b.Write([]Item{NewHTMLItem("<b>hi</b>"), NewTextItem("hi")}))
	require.Len(t, tools.calls, 1)
	assert.Equal(t, psArgv(psWrite), tools.calls[0].argv)

	var payload struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(tools.calls[0].stdin), &payload))
	html, err := base64.StdEncoding.DecodeString(payload.HTML)
	require.NoError(t, err)
	assert.Equal(t, "<b>hi</b>", extractCFHTML(string(html)))
	text, err := base64.StdEncoding.DecodeString(payload.Text)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(text))
}
