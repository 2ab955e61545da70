package dispatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/marklip/internal/clip"
	"go.klb.dev/marklip/internal/convert"
)

type fakeConverter struct {
	err error
}

func (f fakeConverter) MarkdownToHTML(src string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "<p>" + src + "</p>", nil
}

func (f fakeConverter) MarkdownToText(src string) string {
	return strings.ReplaceAll(src, "*", "")
}

func (f fakeConverter) HTMLToMarkdown(src string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return strings.TrimSuffix(strings.TrimPrefix(src, "<p>"), "</p>"), nil
}

func itemText(t *testing.T, m *clip.Memory, f clip.Format) string {
	t.Helper()
	data, err := m.Read(f)
	require.NoError(t, err)
	return string(data)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeToHTML, ModeToMarkdown, ModeAuto} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("to-pdf")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		items     []clip.Item
		wantMode  Mode
		wantCode  ExitCode
		wantHTML  string
		wantText  string
		wantWrite bool
	}{
		{
			name:      "to-html writes html and stripped text",
			mode:      ModeToHTML,
			items:     []clip.Item{clip.NewTextItem("*hi*")},
			wantMode:  ModeToHTML,
			wantHTML:  "<p>*hi*</p>",
			wantText:  "hi",
			wantWrite: true,
		},
		{
			name:     "to-html without text",
			mode:     ModeToHTML,
			items:    []clip.Item{clip.NewHTMLItem("<p>x</p>")},
			wantCode: ExitMissingContent,
		},
		{
			name:     "to-html with empty text",
			mode:     ModeToHTML,
			items:    []clip.Item{clip.NewTextItem("")},
			wantCode: ExitMissingContent,
		},
		{
			name:      "to-md writes text only",
			mode:      ModeToMarkdown,
			items:     []clip.Item{clip.NewHTMLItem("<p>x</p>"), clip.NewTextItem("x")},
			wantMode:  ModeToMarkdown,
			wantText:  "x",
			wantWrite: true,
		},
		{
			name:     "to-md without html",
			mode:     ModeToMarkdown,
			items:    []clip.Item{clip.NewTextItem("x")},
			wantCode: ExitMissingContent,
		},
		{
			name:      "auto prefers html",
			mode:      ModeAuto,
			items:     []clip.Item{clip.NewTextItem("x"), clip.NewHTMLItem("<p>y</p>")},
			wantMode:  ModeToMarkdown,
			wantText:  "y",
			wantWrite: true,
		},
		{
			name:      "auto falls back to text",
			mode:      ModeAuto,
			items:     []clip.Item{clip.NewTextItem("a")},
			wantMode:  ModeToHTML,
			wantHTML:  "<p>a</p>",
			wantText:  "a",
			wantWrite: true,
		},
		{
			name:     "auto with empty text",
			mode:     ModeAuto,
			items:    []clip.Item{clip.NewTextItem("")},
			wantCode: ExitMissingContent,
		},
		{
			name:     "auto on empty clipboard",
			mode:     ModeAuto,
			wantCode: ExitMissingContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := clip.NewMemory(tt.items...)
			res, err := New(m, fakeConverter{}, Options{}).Run(tt.mode)

			assert.Equal(t, tt.wantCode, CodeOf(err))
			if !tt.wantWrite {
				assert.Zero(t, m.Writes())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, res.Mode)
			assert.Equal(t, 1, m.Writes())
			assert.Equal(t, tt.wantText, itemText(t, m, clip.FormatText))
			assert.Equal(t, tt.wantHTML, itemText(t, m, clip.FormatHTML))
		})
	}
}

func TestRunKeepMarkdownText(t *testing.T) {
	m := clip.NewMemory(clip.NewTextItem("*hi*"))
	_, err := New(m, fakeConverter{}, Options{KeepMarkdownText: true}).Run(ModeToHTML)
	require.NoError(t, err)
	assert.Equal(t, "*hi*", itemText(t, m, clip.FormatText))
}

func TestRunConversionFailure(t *testing.T) {
	boom := errors.New("boom")
	for _, mode := range []Mode{ModeToHTML, ModeToMarkdown} {
		t.Run(mode.String(), func(t *testing.T) {
			m := clip.NewMemory(clip.NewTextItem("x"), clip.NewHTMLItem("<p>x</p>"))
			_, err := New(m, fakeConverter{err: boom}, Options{}).Run(mode)

			assert.ErrorIs(t, err, ErrConversionFailed)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, ExitConversion, CodeOf(err))
			assert.Equal(t, MsgConversionFailed, MessageOf(err))
			assert.Zero(t, m.Writes())
		})
	}
}

func TestRunClipboardFailures(t *testing.T) {
	boom := errors.New("pasteboard gone")

	m := clip.NewMemory(clip.NewTextItem("x"))
	m.ReadErr = boom
	_, err := New(m, fakeConverter{}, Options{}).Run(ModeToHTML)
	assert.Equal(t, ExitEnvironment, CodeOf(err))
	assert.ErrorIs(t, err, boom)

	m = clip.NewMemory(clip.NewTextItem("x"))
	m.WriteErr = boom
	_, err = New(m, fakeConverter{}, Options{}).Run(ModeToHTML)
	assert.Equal(t, ExitEnvironment, CodeOf(err))
	assert.Equal(t, "clipboard write failed: pasteboard gone", MessageOf(err))
}

func TestRoundTripThroughClipboard(t *testing.T) {
	conv, err := convert.New(convert.DefaultOptions())
	require.NoError(t, err)

	src := "# Notes\n\nSome **bold** text.\n\n- first\n- second"
	m := clip.NewMemory(clip.NewTextItem(src))
	d := New(m, conv, Options{})

	res, err := d.Run(ModeAuto)
	require.NoError(t, err)
	assert.Equal(t, ModeToHTML, res.Mode)
	assert.Equal(t, MsgToHTML, res.Message)
	assert.Equal(t, "Notes\n\nSome bold text.\n\nfirst\nsecond", itemText(t, m, clip.FormatText))

	res, err = d.Run(ModeAuto)
	require.NoError(t, err)
	assert.Equal(t, ModeToMarkdown, res.Mode)
	assert.False(t, m.Has(clip.FormatHTML))
	assert.Equal(t, src, strings.TrimSpace(itemText(t, m, clip.FormatText)))
}
