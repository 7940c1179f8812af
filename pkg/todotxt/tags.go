package todotxt

import (
	"regexp"
	"sort"
	"strings"
)

// A marker follows the start of the line or any Unicode space. Identifiers
// are letters, marks, digits, connector punctuation or '-'.
const markerBody = `(?:^|[\s\p{Z}])%s([\p{L}\p{M}\p{Nd}\p{Pc}-]+)`

var (
	contextRe = regexp.MustCompile(strings.Replace(markerBody, "%s", "@", 1))
	projectRe = regexp.MustCompile(strings.Replace(markerBody, "%s", `\+`, 1))
	hashtagRe = regexp.MustCompile(strings.Replace(markerBody, "%s", "#", 1))
	keywordRe = regexp.MustCompile(` ([^\s]+):([^\s^/]+)`)
)

// Contexts returns the sorted, deduplicated @context markers found in s.
func Contexts(s string) []string { return markers(contextRe, s) }

// Projects returns the sorted, deduplicated +project markers found in s.
func Projects(s string) []string { return markers(projectRe, s) }

// Hashtags returns the sorted, deduplicated #hashtag markers found in s.
func Hashtags(s string) []string { return markers(hashtagRe, s) }

func markers(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		tag := strings.ToLower(m[1])
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return dedupeSorted(out)
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

// Keywords strips every " key:value" annotation from s. It returns the
// remaining text and the annotations; a repeated key keeps its last value.
// Values never contain '/', so URLs stay part of the text.
func Keywords(s string) (string, map[string]string) {
	tags := map[string]string{}
	matches := keywordRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, tags
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		tags[s[m[2]:m[3]]] = s[m[4]:m[5]]
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), tags
}
