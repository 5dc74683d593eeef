package openai

import (
	"fmt"
	"strings"

	"github.com/civicloom/corpit/ai"
)

const classifierPromptTemplate = `You are a document classifier. Given a document's name, source label, and a content excerpt, classify it into exactly one category.

Valid categories: %s

Respond with ONLY the category label, nothing else.`

// classifierSystemPrompt builds the classification system prompt with the
// closed label set embedded.
func classifierSystemPrompt() string {
	return fmt.Sprintf(classifierPromptTemplate, strings.Join(ai.ContentTypes, ", "))
}

const generatorSystemPrompt = `You are a public engagement expert. Given the full text of a case study about public engagement or participatory governance, extract structured metadata.

Return a JSON object with exactly these fields:
- "summary": A 2-3 paragraph summary of the case study (string)
- "location": The geographic location where this took place (string, e.g. "Toronto, Canada")
- "timeframe": The duration or time period (string, e.g. "6 months", "2019-2020")
- "demographic": The target demographic or participants (string, e.g. "General public (18+)")
- "scale": One of "small", "medium", or "large" based on scope/participant count
- "tags": 2-4 topic tags (array of strings, e.g. ["Deliberative Democracy", "Climate Action"])
- "key_outcomes": 3-5 key outcomes as bullet points (array of strings)
- "implementation_steps": 3-5 implementation steps as bullet points (array of strings)

If information is not available for a field, provide a reasonable inference based on context or use "Not specified".
Return ONLY valid JSON, no markdown fencing.`
