// Package domain contains the core records of the message board.
// This file defines the Message entity and its text bounds.
package domain

import "strings"

// Message text bounds, measured after trimming surrounding whitespace.
const (
	MinMessageLength = 1
	MaxMessageLength = 254
)

// Message is a text post owned by exactly one account. ID is assigned by the
// store on insert. PostedBy and PostedAtEpoch are fixed at creation; updates
// replace the text only.
type Message struct {
	ID            int64  `json:"message_id"`
	PostedBy      int64  `json:"posted_by"`
	Text          string `json:"message_text"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}

// TrimmedText returns the text as it is measured against the length bounds.
func (m Message) TrimmedText() string {
	return strings.TrimSpace(m.Text)
}
