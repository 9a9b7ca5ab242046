package engine

import (
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// MessageCode identifies the kind of decision a Message records.
type MessageCode string

const (
	CodeSuppressed       MessageCode = "suppressed"
	CodeTransferred      MessageCode = "transferred"
	CodeDemoted          MessageCode = "demoted"
	CodeCommemoration    MessageCode = "commemoration"
	CodeArbitration      MessageCode = "arbitration_required"
	CodeOverride         MessageCode = "override"
	CodeSundaySkipped    MessageCode = "sunday_skipped"
	CodeCreated          MessageCode = "created"
	CodeReranked         MessageCode = "reranked"
	CodeRenamed          MessageCode = "renamed"
	CodeRedated          MessageCode = "redated"
	CodeDoctor           MessageCode = "doctor"
	CodePatron           MessageCode = "patron"
	CodeMissingTarget    MessageCode = "missing_target"
	CodeMoved            MessageCode = "moved"
	CodeMoveSuppressed   MessageCode = "move_suppressed"
	CodeDisplaced        MessageCode = "displaced"
	CodeUnknownRelative  MessageCode = "unknown_relative"
	CodeVigilSuppressed  MessageCode = "vigil_suppressed"
	CodeVigilPrecedence  MessageCode = "vigil_precedence"
	CodeVigilUnresolved  MessageCode = "vigil_unresolved"
	CodeVigilOverride    MessageCode = "vigil_override"
	CodeVigilOutOfBounds MessageCode = "vigil_out_of_year"
)

// Message is one entry of the audit trail. It carries every value needed
// to render it in any language without repeating the decision; Text is
// an English rendering for logs. Before and After hold the previous and
// new value of a renamed or re-ranked property; Source names the Missal
// edition, decree or regional calendar that caused the change.
type Message struct {
	Code      MessageCode   `json:"code"`
	Rule      string        `json:"rule,omitempty"`
	Year      int           `json:"year"`
	Event     string        `json:"event"`
	Other     string        `json:"other,omitempty"`
	Date      time.Time     `json:"date"`
	To        time.Time     `json:"to,omitzero"`
	Rank      calendar.Rank `json:"rank"`
	OtherRank calendar.Rank `json:"other_rank,omitempty"`
	Before    string        `json:"before,omitempty"`
	After     string        `json:"after,omitempty"`
	Source    string        `json:"source,omitempty"`
	Text      string        `json:"text"`
}
