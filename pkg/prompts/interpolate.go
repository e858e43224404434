package prompts

import "strings"

// Interpolate substitutes {{key}} placeholders in the template string
func Interpolate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// RenderMessages interpolates every message of a template
func RenderMessages(t *Template, vars map[string]string) []Message {
	rendered := make([]Message, 0, len(t.Messages))
	for _, msg := range t.Messages {
		rendered = append(rendered, Message{
			Role:    msg.Role,
			Content: Interpolate(msg.Content, vars),
		})
	}
	return rendered
}
