package models

// MeetingSummary is the four-field record derived from one transcript.
type MeetingSummary struct {
	AbstractSummary string `json:"abstract_summary"`
	KeyPoints       string `json:"key_points"`
	ActionItems     string `json:"action_items"`
	Sentiment       string `json:"sentiment"`
}

// Section identifies one MeetingSummary field.
type Section string

const (
	SectionAbstractSummary Section = "abstract_summary"
	SectionKeyPoints       Section = "key_points"
	SectionActionItems     Section = "action_items"
	SectionSentiment       Section = "sentiment"
)

// Sections lists every section in output order.
var Sections = []Section{
	SectionAbstractSummary,
	SectionKeyPoints,
	SectionActionItems,
	SectionSentiment,
}

// Title is the human readable label used in console output and documents.
func (s Section) Title() string {
	switch s {
	case SectionAbstractSummary:
		return "Abstract Summary"
	case SectionKeyPoints:
		return "Key Points"
	case SectionActionItems:
		return "Action Items"
	case SectionSentiment:
		return "Sentiment"
	default:
		return string(s)
	}
}

// Get returns the field for s.
func (m MeetingSummary) Get(s Section) string {
	switch s {
	case SectionAbstractSummary:
		return m.AbstractSummary
	case SectionKeyPoints:
		return m.KeyPoints
	case SectionActionItems:
		return m.ActionItems
	case SectionSentiment:
		return m.Sentiment
	default:
		return ""
	}
}

// Set assigns the field for s. Unknown sections are ignored.
func (m *MeetingSummary) Set(s Section, text string) {
	switch s {
	case SectionAbstractSummary:
		m.AbstractSummary = text
	case SectionKeyPoints:
		m.KeyPoints = text
	case SectionActionItems:
		m.ActionItems = text
	case SectionSentiment:
		m.Sentiment = text
	}
}
