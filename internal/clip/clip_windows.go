//go:build windows

package clip

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.design/x/clipboard"
)

const (
	psReadHTML = `$h = Get-Clipboard -TextFormatType Html -Raw
if ($h) { [Convert]::ToBase64String([Text.Encoding]::UTF8.GetBytes($h)) }`

	psHasHTML = `Add-Type -AssemblyName System.Windows.Forms
[System.Windows.Forms.Clipboard]::ContainsText([System.Windows.Forms.TextDataFormat]::Html)`

	psWrite = `Add-Type -AssemblyName System.Windows.Forms
$p = [Console]::In.ReadToEnd() | ConvertFrom-Json
$d = New-Object System.Windows.Forms.DataObject
if ($p.html) { $d.SetData([System.Windows.Forms.DataFormats]::Html, [Text.Encoding]::UTF8.GetString([Convert]::FromBase64String($p.html))) }
if ($p.text) { $d.SetData([System.Windows.Forms.DataFormats]::UnicodeText, [Text.Encoding]::UTF8.GetString([Convert]::FromBase64String($p.text))) }
[System.Windows.Forms.Clipboard]::SetDataObject($d, $true)`
)

type windowsBackend struct {
	run runner
}

// New returns the Windows clipboard backend. Text goes through
// golang.design/x/clipboard; CF_HTML is handled by PowerShell with payloads
// passed as base64 so console code pages never touch them.
func New() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	slog.Debug("clipboard backend selected", "backend", "Windows Clipboard")
	return &windowsBackend{run: runTool}, nil
}

func (b *windowsBackend) Name() string { return "Windows Clipboard" }

func (b *windowsBackend) powershell(stdin []byte, script string) ([]byte, error) {
	return b.run(stdin, "powershell.exe", "-NoProfile", "-NonInteractive", "-STA", "-Command", script)
}

func (b *windowsBackend) Has(f Format) bool {
	switch f {
	case FormatText:
		return clipboard.Read(clipboard.FmtText) != nil
	case FormatHTML:
		out, err := b.powershell(nil, psHasHTML)
		if err != nil {
			slog.Debug("clipboard html check failed", "err", err)
			return false
		}
		return strings.EqualFold(strings.TrimSpace(string(out)), "true")
	}
	return false
}

func (b *windowsBackend) Read(f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return clipboard.Read(clipboard.FmtText), nil
	case FormatHTML:
		out, err := b.powershell(nil, psReadHTML)
		if err != nil {
			return nil, err
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(out)))
		if err != nil {
			return nil, fmt.Errorf("decode HTML data: %w", err)
		}
		return []byte(extractCFHTML(string(raw))), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

func (b *windowsBackend) Write(items []Item) error {
	if err := checkFormats(items); err != nil {
		return err
	}
	html, hasHTML := find(items, FormatHTML)
	text, _ := find(items, FormatText)
	if !hasHTML {
		clipboard.Write(clipboard.FmtText, text.Data)
		return nil
	}
	payload, err := json.Marshal(struct {
		HTML string `json:"html"`
		Text string `json:"text,omitempty"`
	}{
		HTML: base64.StdEncoding.EncodeToString([]byte(buildCFHTML(html.Text()))),
		Text: base64.StdEncoding.EncodeToString(text.Data),
	})
	if err != nil {
		return err
	}
	_, err = b.powershell(payload, psWrite)
	return err
}

func (b *windowsBackend) Close() {}
