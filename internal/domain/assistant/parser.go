package assistant

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseResult is the tagged outcome of parsing an oracle reply: either a
// Preview carrying proposed edits, or NoAction carrying plain advisory text.
type ParseResult struct {
	HasAction bool
	Action    string
	Message   string
	Edits     []ProposedEdit
}

// fencedBlock matches a fenced JSON object in free-form oracle text.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type proposalPayload struct {
	Action  string         `json:"action"`
	Message string         `json:"message"`
	Edits   []ProposedEdit `json:"edits"`
}

// ParseOracleReply extracts a structured proposal from raw oracle output.
// The first fenced block that unmarshals into a recognized action with at
// least one edit item wins. Any malformation degrades to NoAction with the
// full text as the advisory message; parsing never fails.
func ParseOracleReply(text string) ParseResult {
	for _, m := range fencedBlock.FindAllStringSubmatchIndex(text, -1) {
		block := text[m[2]:m[3]]

		var payload proposalPayload
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			continue
		}
		if payload.Action != ActionPreviewAttendance || len(payload.Edits) == 0 {
			continue
		}

		message := strings.TrimSpace(payload.Message)
		if message == "" {
			message = strings.TrimSpace(text[:m[0]] + text[m[1]:])
		}
		if message == "" {
			message = "Review the proposed changes and confirm to apply them."
		}

		return ParseResult{
			HasAction: true,
			Action:    payload.Action,
			Message:   message,
			Edits:     payload.Edits,
		}
	}

	return ParseResult{Message: strings.TrimSpace(text)}
}
