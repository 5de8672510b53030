package betclic

import (
	"net/url"
	"regexp"
)

const defaultBaseURL = "https://www.betclic.pt"

// disallowedURLChars matches every character stripped from a combined URL
// before encoding. Stripping (not escaping) keeps URLs clean and greppable
// at the cost of silently dropping characters such as accented letters in
// slugs.
var disallowedURLChars = regexp.MustCompile(`[^A-Za-z0-9_:/.\-]`)

// CombineMatchURL joins a competition-relative path and a match-relative
// path into one absolute URL under the fixed base origin. Disallowed
// characters are removed from the whole string first, then the path
// component is percent-encoded with scheme and host untouched. The result
// is idempotent: canonicalizing a canonical URL yields the same URL.
func CombineMatchURL(competitionPath, matchPath string) string {
	combined := defaultBaseURL + "/" + competitionPath + "/" + matchPath
	combined = disallowedURLChars.ReplaceAllString(combined, "")

	u, err := url.Parse(combined)
	if err != nil {
		return combined
	}
	return u.String()
}
