package normdoc

import (
	"net/url"
	"regexp"
	"strings"
)

// All tables below are evaluated first-match-wins in slice order. More
// specific rules must precede more general ones; reordering changes results.

// TypeRule maps a lowercase URL path substring to a document type.
type TypeRule struct {
	Substring string
	Type      DocType
}

// TypeRules classifies document URLs.
var TypeRules = []TypeRule{
	{Substring: "/gost", Type: DocTypeGOST},
	{Substring: "/standart", Type: DocTypeGOST},
	{Substring: "/federalnyj-zakon", Type: DocTypeFederalLaw},
	{Substring: "/prikaz", Type: DocTypeOrder},
	{Substring: "/postanovlenie", Type: DocTypeResolution},
	{Substring: "/snip", Type: DocTypeSNiP},
	{Substring: "/sp", Type: DocTypeSP},
}

// SummaryNumberPatterns extract a document number from a listing link's
// title and URL. The first capture group is the number.
var SummaryNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`№\s*(\d+[-/]\d+)`),
	regexp.MustCompile(`(\d+[-/]\d+(?:\.\d+)*)`),
	regexp.MustCompile(`ГОСТ\s+Р?\s*(\d+(?:\.\d+)*[-/]\d+)`),
	regexp.MustCompile(`СП\s+(\d+(?:\.\d+)*[-/]?\d*)`),
	regexp.MustCompile(`СНиП\s+(\d+(?:\.\d+)*[-/]\d+)`),
	regexp.MustCompile(`(\d{4,5}[-/]\d{2,4})`),
}

// DatePatterns extract an adoption date from a document's text.
var DatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(?i)принят\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)утвержден\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
}

// DetailNumberPatterns extract a document number from a document's text.
var DetailNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`№\s*([№\d\-/.]+)`),
	regexp.MustCompile(`N\s+([№\d\-/.]+)`),
	regexp.MustCompile(`Номер:\s*([№\d\-/.]+)`),
}

// StatusRule maps a lowercase keyword to a status.
type StatusRule struct {
	Keyword string
	Status  Status
}

// StatusRules detect a document's legal status.
var StatusRules = []StatusRule{
	{Keyword: "действует", Status: StatusActive},
	{Keyword: "отменен", Status: StatusRepealed},
	{Keyword: "утратил силу", Status: StatusExpired},
	{Keyword: "приостановлен", Status: StatusSuspended},
}

// OrganizationPatterns extract the issuing organization. Matches stop at the
// end of the sentence or line.
var OrganizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(министерство\s+[^.\n]+)`),
	regexp.MustCompile(`(?i)(правительство\s+[^.\n]+)`),
	regexp.MustCompile(`(?i)(росстандарт)`),
	regexp.MustCompile(`(?i)(федеральное агентство[^.\n]+)`),
}

// ClassifyType infers a document type from a URL. Only the path takes part
// when rawURL parses; the title of the document is never consulted.
func ClassifyType(rawURL string) DocType {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	path = strings.ToLower(path)

	for _, rule := range TypeRules {
		if strings.Contains(path, rule.Substring) {
			return rule.Type
		}
	}
	return DocTypeGeneric
}

// MatchSummaryNumber returns the document number found in a listing entry's
// title and URL, or "" if none matches.
func MatchSummaryNumber(title, rawURL string) string {
	return firstSubmatch(SummaryNumberPatterns, title+" "+rawURL)
}

// MatchDate returns the first date found in text, or "".
func MatchDate(text string) string {
	return firstSubmatch(DatePatterns, text)
}

// MatchDetailNumber returns the first document number found in text, or "".
func MatchDetailNumber(text string) string {
	return firstSubmatch(DetailNumberPatterns, text)
}

// MatchStatus returns the first status whose keyword occurs in text
// (case-insensitive), or "".
func MatchStatus(text string) Status {
	lower := strings.ToLower(text)
	for _, rule := range StatusRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Status
		}
	}
	return ""
}

// MatchOrganization returns the first issuing organization found in text, or "".
func MatchOrganization(text string) string {
	return strings.TrimSpace(firstSubmatch(OrganizationPatterns, text))
}

// ExtractMetadata runs every metadata matcher over text independently.
func ExtractMetadata(text string) Metadata {
	return Metadata{
		Date:         MatchDate(text),
		Number:       MatchDetailNumber(text),
		Status:       MatchStatus(text),
		Organization: MatchOrganization(text),
	}
}

func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
