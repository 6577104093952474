// Package analysis extracts structured insights from document text.
package analysis

import (
	"fmt"
	"strings"
)

// MaxPromptText is the number of characters of document text sent for analysis.
const MaxPromptText = 8000

// TruncationMarker is appended when the document text exceeds MaxPromptText.
const TruncationMarker = "...\n\n[Content truncated for processing]"

const promptHeader = `You are an AI assistant that extracts structured insights from KMRL enterprise documents. Analyze this document and return a JSON object with the following structure:

{
  "title": "Document title (extract or generate from content)",
  "type": "Document type (Report, Proposal, Invoice, Audit, Compliance, etc.)",
  "department": "Relevant department (Finance, HR, Legal, Operations, etc.)",
  "date": "Document date (extract or estimate)",
  "language": "Primary language (English/Malayalam/Mixed)",
  "urgency": "Document urgency level (low/medium/high)",
  "entities": {
    "names": ["person names found"],
    "places": ["locations mentioned"],
    "amounts": ["monetary amounts or quantities"]
  },
  "summary": "Comprehensive 200-word summary",
  "keyPoints": ["3-5 most important points"],
  "analyticsReady": true/false (if document contains financial data, metrics, or quantitative information)
}
`

// BuildPrompt is deterministic for a given (fileName, text) pair.
func BuildPrompt(fileName, text string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	fmt.Fprintf(&b, "\nDocument Name: %s\n\nDocument Content:\n", fileName)
	b.WriteString(Truncate(text, MaxPromptText))
	return b.String()
}

// Truncate cuts text to limit characters and appends TruncationMarker when it had to.
func Truncate(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + TruncationMarker
}
