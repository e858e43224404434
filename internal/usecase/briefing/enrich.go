package briefing

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// Public email providers whose domains never identify a company
var commonEmailDomains = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"outlook.com":    {},
	"hotmail.com":    {},
	"icloud.com":     {},
	"protonmail.com": {},
	"aol.com":        {},
}

var linkedInRe = regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9%_-]+)`)

// ExtractDomain returns the lowercased domain part of an email address
func ExtractDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsCommonEmailDomain reports whether the domain belongs to a public email
// provider (case-insensitive)
func IsCommonEmailDomain(domain string) bool {
	_, ok := commonEmailDomains[strings.ToLower(domain)]
	return ok
}

// InferCompanyDomain picks the company domain for a meeting: the organizer's
// email domain first, then the attendees in list order, skipping public email
// providers. Returns "" when no corporate domain is present.
func InferCompanyDomain(meeting *entities.Meeting) string {
	if d := ExtractDomain(meeting.Organizer.Email); d != "" && !IsCommonEmailDomain(d) {
		return d
	}
	for _, attendee := range meeting.Attendees {
		if d := ExtractDomain(attendee.Email); d != "" && !IsCommonEmailDomain(d) {
			return d
		}
	}
	return ""
}

// CompanyNameFromDomain derives a display name from a domain by title-casing
// its first label ("acme-labs.io" -> "Acme Labs")
func CompanyNameFromDomain(domain string) string {
	label := domain
	if dot := strings.Index(domain, "."); dot >= 0 {
		label = domain[:dot]
	}
	label = strings.NewReplacer("-", " ", "_", " ").Replace(label)

	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ExtractLinkedInURLs pulls linkedin.com/in/<handle> profile URLs out of free
// text, normalized and deduplicated in order of first appearance
func ExtractLinkedInURLs(text string) []string {
	matches := linkedInRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		handle := strings.ToLower(m[1])
		if _, dup := seen[handle]; dup {
			continue
		}
		seen[handle] = struct{}{}
		urls = append(urls, "https://www.linkedin.com/in/"+handle)
	}
	return urls
}

// MatchLinkedInURL finds the first profile URL whose handle matches the
// attendee's email or display name by case-insensitive substring containment
func MatchLinkedInURL(attendee entities.Participant, urls []string) string {
	local := strings.ToLower(attendee.Email)
	if at := strings.LastIndex(local, "@"); at >= 0 {
		local = local[:at]
	}
	name := strings.ToLower(strings.ReplaceAll(attendee.DisplayName, " ", ""))

	for _, url := range urls {
		handle := strings.ToLower(url[strings.LastIndex(url, "/")+1:])
		compact := strings.NewReplacer("-", "", "_", "").Replace(handle)

		if local != "" && (strings.Contains(local, compact) || strings.Contains(compact, local)) {
			return url
		}
		if name != "" && (strings.Contains(name, compact) || strings.Contains(compact, name)) {
			return url
		}
	}
	return ""
}
