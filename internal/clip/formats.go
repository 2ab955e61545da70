package clip

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// X11 and Wayland advertise plain text under several target names.
var textTargets = map[string]struct{}{
	"text/plain":               {},
	"text/plain;charset=utf-8": {},
	"UTF8_STRING":              {},
	"STRING":                   {},
	"TEXT":                     {},
}

// parseTypeList splits the newline-separated output of `wl-paste --list-types`
// or `xclip -o -t TARGETS`.
func parseTypeList(out []byte) []string {
	var types []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// offers reports whether a target list contains the format.
func offers(types []string, f Format) bool {
	for _, t := range types {
		switch f {
		case FormatText:
			if _, ok := textTargets[t]; ok {
				return true
			}
		case FormatHTML:
			if t == "text/html" || strings.HasPrefix(t, "text/html;") {
				return true
			}
		}
	}
	return false
}

// macOS

const (
	appleDataPrefix = "«data HTML"
	appleDataSuffix = "»"
)

// decodeAppleScriptData decodes the `«data HTML…»` literal osascript prints
// for `the clipboard as «class HTML»`.
func decodeAppleScriptData(out []byte) ([]byte, error) {
	s := strings.TrimSpace(string(out))
	if !strings.HasPrefix(s, appleDataPrefix) || !strings.HasSuffix(s, appleDataSuffix) {
		return nil, fmt.Errorf("unexpected osascript output %q", truncate(s, 40))
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, appleDataPrefix), appleDataSuffix)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode HTML data: %w", err)
	}
	return data, nil
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// setClipboardScript returns an AppleScript statement that replaces the
// pasteboard with every item at once.
func setClipboardScript(items []Item) string {
	var fields []string
	if it, ok := find(items, FormatHTML); ok {
		fields = append(fields, "«class HTML»:«data HTML"+strings.ToUpper(hex.EncodeToString(it.Data))+"»")
	}
	if it, ok := find(items, FormatText); ok {
		fields = append(fields, "«class utf8»:"+appleScriptString(it.Text()))
	}
	return "set the clipboard to {" + strings.Join(fields, ", ") + "}"
}

// Windows CF_HTML

const (
	cfHTMLHeader = "Version:0.9\r\n" +
		"StartHTML:%010d\r\n" +
		"EndHTML:%010d\r\n" +
		"StartFragment:%010d\r\n" +
		"EndFragment:%010d\r\n"
	cfHTMLPrefix   = "<html><body>\r\n<!--StartFragment-->"
	cfHTMLSuffix   = "<!--EndFragment-->\r\n</body></html>"
	fragmentStart  = "<!--StartFragment-->"
	fragmentEnd    = "<!--EndFragment-->"
	startFragField = "StartFragment:"
	endFragField   = "EndFragment:"
	startHTMLField = "StartHTML:"
)

// buildCFHTML wraps an HTML fragment in the Windows "HTML Format" envelope.
// Offsets are byte offsets into the UTF-8 payload.
func buildCFHTML(fragment string) string {
	headerLen := len(fmt.Sprintf(cfHTMLHeader, 0, 0, 0, 0))
	startHTML := headerLen
	startFrag := startHTML + len(cfHTMLPrefix)
	endFrag := startFrag + len(fragment)
	endHTML := endFrag + len(cfHTMLSuffix)
	return fmt.Sprintf(cfHTMLHeader, startHTML, endHTML, startFrag, endFrag) +
		cfHTMLPrefix + fragment + cfHTMLSuffix
}

// extractCFHTML returns the fragment carried by a CF_HTML payload. Payloads
// without a recognisable header are returned unchanged.
func extractCFHTML(raw string) string {
	if i := strings.Index(raw, fragmentStart); i >= 0 {
		rest := raw[i+len(fragmentStart):]
		if j := strings.Index(rest, fragmentEnd); j >= 0 {
			return rest[:j]
		}
	}
	start, okStart := headerOffset(raw, startFragField)
	end, okEnd := headerOffset(raw, endFragField)
	if okStart && okEnd && start <= end && end <= len(raw) {
		return raw[start:end]
	}
	if start, ok := headerOffset(raw, startHTMLField); ok && start <= len(raw) {
		return raw[start:]
	}
	return raw
}

func headerOffset(raw, field string) (int, bool) {
	i := strings.Index(raw, field)
	if i < 0 {
		return 0, false
	}
	rest := raw[i+len(field):]
	if j := strings.IndexAny(rest, "\r\n"); j >= 0 {
		rest = rest[:j]
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
