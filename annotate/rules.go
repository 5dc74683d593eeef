package annotate

import "strings"

// contentRule pairs a predicate over (source label, document name) with the
// label it yields. Rules are evaluated in order and the first match wins;
// later rules are unreachable for inputs matched by earlier ones, which is
// a deliberate property of the table, not a defect.
type contentRule struct {
	match func(s, n string) bool
	label string
}

func either(s, n string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) || strings.Contains(n, w) {
			return true
		}
	}
	return false
}

func inSource(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// contentTypeRules is the ordered rule table for the fallback content-type
// classifier. It matches keywords against the lower-cased source label and
// document name only, never body text.
var contentTypeRules = []contentRule{
	{func(s, n string) bool { return either(s, n, "transcript") }, "transcript"},
	{func(s, n string) bool { return either(s, n, "lecture") }, "lecture"},
	{func(s, n string) bool { return either(s, n, "journal", "academic") }, "journal_article"},
	{func(s, n string) bool { return either(s, n, "blog") }, "blog_post"},
	{func(s, n string) bool { return either(s, n, "report", "white paper", "whitepaper") }, "report"},
	{func(s, n string) bool { return either(s, n, "guide", "handbook", "how-to") }, "guide"},
	{func(s, n string) bool { return inSource(s, "popvox", "democracynext") || either(s, n, "policy brief") }, "policy_brief"},
	{func(s, n string) bool { return inSource(s, "govlab") }, "report"},
	{func(s, n string) bool { return either(s, n, "reboot") }, "blog_post"},
	{func(s, n string) bool { return either(s, n, "case study", "case studies") }, "case_study"},
	{func(s, n string) bool { return either(s, n, "tool", "resource") }, "tool_or_resource"},
}

// FallbackContentType classifies a document by keyword rules alone.
// It is the deterministic local path taken whenever the classification
// service fails or returns a label outside the closed set.
func FallbackContentType(sourceLabel, name string) string {
	s := strings.ToLower(sourceLabel)
	n := strings.ToLower(name)
	for _, rule := range contentTypeRules {
		if rule.match(s, n) {
			return rule.label
		}
	}
	return "other"
}

// docTypeRule pairs a predicate over the source label with a coarse
// provenance category.
type docTypeRule struct {
	match func(s string) bool
	label string
}

var docTypeRules = []docTypeRule{
	{func(s string) bool { return strings.Contains(s, "filtered reboot") }, "reboot_democracy"},
	{func(s string) bool { return strings.Contains(s, "govlab") }, "govlab_resource"},
	{func(s string) bool { return strings.Contains(s, "lecture") }, "lecture_series"},
	{func(s string) bool { return strings.Contains(s, "transcript") }, "transcript"},
	{func(s string) bool { return strings.Contains(s, "reboot") }, "reboot_democracy"},
	{func(s string) bool { return strings.Contains(s, "popvox") }, "policy_resource"},
	{func(s string) bool { return strings.Contains(s, "democracynext") }, "policy_resource"},
	{func(s string) bool { return strings.Contains(s, "journal") }, "academic_paper"},
}

// DocTypeDefault is the provenance category when no rule matches.
const DocTypeDefault = "external_resource"

// DocType derives the coarse provenance category from the source label.
// Unlike content-type classification this never involves the LLM.
func DocType(sourceLabel string) string {
	s := strings.ToLower(sourceLabel)
	for _, rule := range docTypeRules {
		if rule.match(s) {
			return rule.label
		}
	}
	return DocTypeDefault
}
