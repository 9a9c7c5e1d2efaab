package naval

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Prebuilt filters for the usual web-facing string fields. They are plain
// compositions of the core primitives, not special machinery.

const (
	msgBadEmail  = "This is not a valid email address."
	msgBadDomain = "This is not a valid domain name."
	msgBadURL    = "This is not a valid url."
)

var (
	emailUserRe = regexp.MustCompile(
		"^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*$",
	)
	domainRe = regexp.MustCompile(
		`^(?:[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?\.)+[A-Za-z]{2,63}$`,
	)
	urlRe = regexp.MustCompile(
		`^(?i)(?:(?:https?|ftp)://)` + // scheme
			`(?:\S+(?::\S*)?@)?` + // userinfo
			`(?:(?:[1-9]\d?|1\d\d|2[0-4]\d|25[0-5])(?:\.\d{1,3}){3}` + // IPv4
			`|(?:[a-z0-9\x{00a1}-\x{ffff}]+-?)*[a-z0-9\x{00a1}-\x{ffff}]+` + // host label
			`(?:\.(?:[a-z0-9\x{00a1}-\x{ffff}]+-?)*[a-z0-9\x{00a1}-\x{ffff}]+)*` + // subdomains
			`\.[a-z\x{00a1}-\x{ffff}]{2,})` + // tld
			`(?::\d{2,5})?` + // port
			`(?:/[^\s]*)?$`, // path, query, fragment
	)
)

func isDomain(v any) bool {
	s, ok := v.(string)
	if !ok || s == "" || len(s) > 253 {
		return false
	}
	// IDNA first, so unicode domain names are judged by their ASCII form
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return false
	}
	return domainRe.MatchString(ascii)
}

func isEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return emailUserRe.MatchString(s[:at]) && isDomain(s[at+1:])
}

// Email accepts syntactically valid email addresses with a fully qualified
// domain part ("root@localhost" is rejected).
var Email Filter = Assert(isEmail).WithMessage(msgBadEmail)

// Domain accepts fully qualified domain names, unicode names included.
var Domain Filter = Assert(isDomain).WithMessage(msgBadDomain)

// Url accepts absolute http, https and ftp URLs.
var Url Filter = Do(
	TypeIs[string](),
	MaxLength(2083),
	RegexCompiled(urlRe),
).WithMessage(msgBadURL)
