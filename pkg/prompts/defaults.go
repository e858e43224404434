package prompts

// Compiled-in fallbacks for the three pipeline templates. A JSON file with
// the same name in the prompts directory takes precedence.
var defaultTemplates = map[string]*Template{
	TemplateCompanySummary: {
		Messages: []Message{
			{Role: "system", Content: "You are a professional business analyst. Respond with a JSON object containing a \"description\" field."},
			{Role: "user", Content: "Analyze the company: {{company.name}} at {{company.domain}}. Context: {{company.aboutText}}"},
		},
	},
	TemplateAttendeeSummary: {
		Messages: []Message{
			{Role: "system", Content: "You are a professional researcher. Respond with a JSON object with name, title, summary, focusAreas and recentHighlights fields."},
			{Role: "user", Content: "Summarize attendee: {{name}} ({{email}}). LinkedIn: {{linkedinUrl}}. Context: {{meetingContext}}"},
		},
	},
	TemplateTalkingPoints: {
		Messages: []Message{
			{Role: "system", Content: "You are a professional meeting preparation assistant. Respond with a JSON object with \"talkingPoints\" (bullet, rationale) and \"icebreakers\" (line, whyItWorks) lists."},
			{Role: "user", Content: "Company: {{companyBriefJson}}\nAttendees: {{attendeesArray}}\nMeeting intent: {{meeting.intent}}\nTone: {{tone}}, length: {{length}}."},
		},
	},
}

// Template names used by the enrichment pipeline
const (
	TemplateCompanySummary  = "company_summary"
	TemplateAttendeeSummary = "attendee_summary_single"
	TemplateTalkingPoints   = "talkingpoints_icebreakers"
)
