package ai

// ContentTypes is the closed set of content-type labels. A classification
// result outside this set is discarded in favor of the rule-based fallback.
var ContentTypes = []string{
	"case_study",
	"transcript",
	"blog_post",
	"journal_article",
	"report",
	"guide",
	"policy_brief",
	"lecture",
	"tool_or_resource",
	"other",
}

// ContentTypeCaseStudy is the label that routes a document into the
// case-study library.
const ContentTypeCaseStudy = "case_study"

// ContentTypeOther is the label used when nothing else matches.
const ContentTypeOther = "other"

// IsContentType reports whether label belongs to the closed set.
func IsContentType(label string) bool {
	for _, t := range ContentTypes {
		if label == t {
			return true
		}
	}
	return false
}
