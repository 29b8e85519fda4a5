package dsl

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Format validators. These deliberately avoid net/mail and net/url: the
// accepted grammar is the pragmatic subset common to web validation
// libraries, not the full RFCs.

const emailLocalExtra = "!#$%&'*+/=?^_`{|}~.-"

func isEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if local == "" || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, r := range local {
		if !isAlnum(r) && !strings.ContainsRune(emailLocalExtra, r) {
			return false
		}
	}
	return isHostname(domain) && strings.Contains(domain, ".")
}

func isURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	if rest == "" {
		return false
	}
	return !strings.ContainsAny(s, " \t\n\r")
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		if len(p) > 1 && p[0] == '0' {
			return false
		}
		n := 0
		for i := 0; i < len(p); i++ {
			c := p[i]
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

func isIPv6(s string) bool {
	if s == "::" {
		return true
	}
	shorthand := strings.Contains(s, "::")
	if strings.Count(s, "::") > 1 {
		return false
	}
	trimmed := strings.TrimPrefix(strings.TrimSuffix(s, "::"), "::")
	var groups []string
	for _, half := range strings.Split(trimmed, "::") {
		if half == "" {
			continue
		}
		groups = append(groups, strings.Split(half, ":")...)
	}
	if shorthand {
		if len(groups) > 7 {
			return false
		}
	} else if len(groups) != 8 {
		return false
	}
	for _, g := range groups {
		if g == "" || len(g) > 4 {
			return false
		}
		for i := 0; i < len(g); i++ {
			if !isHexDigit(g[i]) {
				return false
			}
		}
	}
	return true
}

func isBase64(s string) bool {
	if len(s)%4 != 0 {
		return false
	}
	pad := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '=':
			pad++
			if pad > 2 || i < len(s)-2 {
				return false
			}
		case pad > 0:
			return false
		case !isAlnumByte(c) && c != '+' && c != '/':
			return false
		}
	}
	return true
}

func isHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !isAlnumByte(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

func isCUID2(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Crockford base32 alphabet: digits plus uppercase letters except I L O U.
func isULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z' && c != 'I' && c != 'L' && c != 'O' && c != 'U':
		default:
			return false
		}
	}
	return true
}

func isNanoID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isAlnumByte(c) && c != '_' && c != '-' {
			return false
		}
	}
	return true
}

func isEmoji(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isEmojiRune(r) {
			return false
		}
	}
	return true
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r == 0x200D || r == 0xFE0F: // ZWJ and variation selector
		return true
	case r >= 0x1F000 && r <= 0x1F2FF:
		return true
	default:
		return false
	}
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	month := int(s[5]-'0')*10 + int(s[6]-'0')
	day := int(s[8]-'0')*10 + int(s[9]-'0')
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

func isISOTime(s string) bool {
	if len(s) < 5 || s[2] != ':' {
		return false
	}
	hh := digits2(s[0], s[1])
	mm := digits2(s[3], s[4])
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return false
	}
	rest := s[5:]
	if rest == "" {
		return true
	}
	if rest[0] != ':' || len(rest) < 3 {
		return false
	}
	ss := digits2(rest[1], rest[2])
	if ss < 0 || ss > 59 {
		return false
	}
	frac := rest[3:]
	if frac == "" {
		return true
	}
	if frac[0] != '.' || len(frac) == 1 {
		return false
	}
	for i := 1; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return false
		}
	}
	return true
}

func isISODateTime(s string) bool {
	if len(s) < 16 || s[10] != 'T' {
		return false
	}
	if !isISODate(s[:10]) {
		return false
	}
	rest := s[11:]
	// Split off a trailing offset: Z or ±HH:MM.
	if strings.HasSuffix(rest, "Z") {
		rest = rest[:len(rest)-1]
	} else if len(rest) > 6 {
		tail := rest[len(rest)-6:]
		if (tail[0] == '+' || tail[0] == '-') && tail[3] == ':' {
			oh := digits2(tail[1], tail[2])
			om := digits2(tail[4], tail[5])
			if oh < 0 || oh > 23 || om < 0 || om > 59 {
				return false
			}
			rest = rest[:len(rest)-6]
		}
	}
	return isISOTime(rest)
}

func isDuration(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.ParseDuration(s)
	return err == nil
}

func isJSONString(s string) bool {
	return json.Valid([]byte(s))
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isAlnumByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func digits2(a, b byte) int {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return -1
	}
	return int(a-'0')*10 + int(b-'0')
}
