package livedom

import (
	"bytes"
	"strings"
)

// Sufficiency holds the thresholds deciding whether plain-HTTP HTML carries
// enough text for direct classification, or the page needs a browser
// rendering pass. Zero values are replaced by defaults().
type Sufficiency struct {
	// MinBytes is the smallest document size considered at all.
	MinBytes int `yaml:"min_bytes"`
	// MinText is the minimum number of non-whitespace text bytes.
	MinText int `yaml:"min_text"`
	// MinRatio is the minimum text share of text+markup bytes.
	MinRatio float64 `yaml:"min_ratio"`
}

func (s *Sufficiency) defaults() {
	if s.MinBytes == 0 {
		s.MinBytes = 256
	}
	if s.MinText == 0 {
		s.MinText = 200
	}
	if s.MinRatio == 0 {
		s.MinRatio = 0.10
	}
}

// spaShells are markers of client-rendered pages whose server HTML is an
// empty mount point. Matched case-insensitively.
var spaShells = []string{
	"<div id=\"root\"></div>",
	"<div id=\"app\"></div>",
	"<div id=\"__next\"></div>",
	"<noscript>you need to enable javascript",
	"<noscript>enable javascript",
}

// Check reports whether the HTML body has enough text content relative to
// markup that the classifier can work on it directly. SPA shells and
// near-empty documents fail this check.
func (s Sufficiency) Check(html []byte) bool {
	s.defaults()
	if len(html) < s.MinBytes {
		return false
	}

	textLen, markupLen := textMarkupRatio(html)
	total := textLen + markupLen
	if total == 0 {
		return false
	}
	if float64(textLen)/float64(total) < s.MinRatio {
		return false
	}
	if textLen < s.MinText {
		return false
	}

	lower := bytes.ToLower(html)
	for _, shell := range spaShells {
		if bytes.Contains(lower, []byte(shell)) {
			return false
		}
	}
	return true
}

// IsSufficient applies the default thresholds.
func IsSufficient(html []byte) bool {
	return Sufficiency{}.Check(html)
}

// textMarkupRatio computes the approximate byte count of text vs markup,
// skipping script and style bodies.
func textMarkupRatio(html []byte) (text, markup int) {
	inTag := false
	inScript := false
	inStyle := false

	s := string(html)
	i := 0
	for i < len(s) {
		if inScript {
			idx := strings.Index(s[i:], "</script")
			if idx == -1 {
				break
			}
			markup += idx + len("</script>")
			i += idx
			end := strings.IndexByte(s[i:], '>')
			if end >= 0 {
				i += end + 1
			}
			inScript = false
			continue
		}
		if inStyle {
			idx := strings.Index(s[i:], "</style")
			if idx == -1 {
				break
			}
			markup += idx + len("</style>")
			i += idx
			end := strings.IndexByte(s[i:], '>')
			if end >= 0 {
				i += end + 1
			}
			inStyle = false
			continue
		}

		ch := s[i]
		if ch == '<' {
			inTag = true
			markup++
			rest := strings.ToLower(s[i:])
			if strings.HasPrefix(rest, "<script") {
				inScript = true
			} else if strings.HasPrefix(rest, "<style") {
				inStyle = true
			}
			i++
			continue
		}
		if ch == '>' {
			inTag = false
			markup++
			i++
			continue
		}
		if inTag {
			markup++
		} else {
			if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
				text++
			}
		}
		i++
	}
	return text, markup
}
