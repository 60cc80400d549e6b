package dbg

import (
	"regexp"
	"strings"
)

// rule is one compiled selector token. token keeps the original wildcard
// form so Disable can reconstruct an equivalent selector; re is the anchored
// matcher derived from it.
type rule struct {
	token string
	re    *regexp.Regexp
}

func (r rule) match(namespace string) bool {
	return r.re.MatchString(namespace)
}

// ruleSet holds the compiled allow and deny lists. Deny rules are evaluated
// first so a matching deny short-circuits without scanning allows.
type ruleSet struct {
	allow []rule
	deny  []rule
}

// compileSelector turns a selector string such as "api:*,-api:internal" into
// a ruleSet. Tokens are separated by runs of whitespace and/or commas; a
// leading '-' marks a deny token. Empty tokens are skipped, so any input
// compiles to some rule set.
func compileSelector(selector string) ruleSet {
	var rs ruleSet
	for _, token := range splitSelector(selector) {
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "-") {
			token = token[1:]
			if token == "" {
				continue
			}
			rs.deny = append(rs.deny, compileToken(token))
			continue
		}
		rs.allow = append(rs.allow, compileToken(token))
	}
	return rs
}

func splitSelector(selector string) []string {
	return strings.FieldsFunc(selector, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// compileToken builds an anchored matcher where '*' matches any sequence of
// characters and everything else matches literally.
func compileToken(token string) rule {
	pattern := strings.ReplaceAll(regexp.QuoteMeta(token), `\*`, `.*`)
	return rule{
		token: token,
		re:    regexp.MustCompile(`^` + pattern + `$`),
	}
}

// enabled reports whether namespace passes the rule set. A namespace that
// itself ends in '*' is always on, even past deny rules; library authors use
// this to ship always-active namespaces. Otherwise deny overrides allow, and
// the default is off.
func (rs ruleSet) enabled(namespace string) bool {
	if strings.HasSuffix(namespace, "*") {
		return true
	}
	for _, r := range rs.deny {
		if r.match(namespace) {
			return false
		}
	}
	for _, r := range rs.allow {
		if r.match(namespace) {
			return true
		}
	}
	return false
}

// selector renders the rule set back into a selector string that compiles to
// an equivalent rule set: allow tokens as-is, deny tokens prefixed with '-',
// comma-joined.
func (rs ruleSet) selector() string {
	tokens := make([]string, 0, len(rs.allow)+len(rs.deny))
	for _, r := range rs.allow {
		tokens = append(tokens, r.token)
	}
	for _, r := range rs.deny {
		tokens = append(tokens, "-"+r.token)
	}
	return strings.Join(tokens, ",")
}
