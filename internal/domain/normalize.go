package domain

import (
	"strings"
	"unicode"
)

// NormalizeText trims surrounding whitespace and compresses inner runs of
// whitespace into a single space. Case is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Slugify turns a display name into a URL-safe slug: lowercase ASCII letters,
// digits and single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NormalizeFolderPath trims every segment and drops empty ones, so
// ["", " work ", "q1"] becomes ["work", "q1"]. A nil input yields an empty,
// non-nil path.
func NormalizeFolderPath(path []string) []string {
	out := make([]string, 0, len(path))
	for _, seg := range path {
		seg = NormalizeText(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// ParseFolderPath splits a slash separated path ("work/q1") into segments.
func ParseFolderPath(s string) []string {
	return NormalizeFolderPath(strings.Split(s, "/"))
}

// NormalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(NormalizeText(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
