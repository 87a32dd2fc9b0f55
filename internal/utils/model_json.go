package utils

import (
	"regexp"
	"strings"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// CleanModelJSON strips markdown fences and surrounding prose from a
// model response, leaving the outermost JSON object.
func CleanModelJSON(responseText string) string {
	if match := jsonObjectPattern.FindString(responseText); match != "" {
		responseText = match
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	return strings.TrimSpace(responseText)
}
