// Package conversation manages widget conversations and their message
// history in the record store.
package conversation

import "time"

// State of a conversation record.
type State string

const (
	StateNew    State = "New"
	StateActive State = "Active"
	StateClosed State = "Closed"
)

// Channel identifies where the conversation originated.
const ChannelPlayground = "Playground"

// Conversation references one ongoing exchange. The thread itself is owned by
// the hosted assistant service; this record only links to it.
type Conversation struct {
	RecordID    string    `json:"id"`
	ThreadID    string    `json:"threadId"`
	Channel     string    `json:"channel"`
	State       State     `json:"state"`
	StartedAt   time.Time `json:"startedAt"`
	Reengaged   int       `json:"reengaged,omitempty"`
	LastMessage time.Time `json:"lastMessageAt,omitempty"`
}

// Message is one chat message persisted in the record store.
type Message struct {
	RecordID  string    `json:"id"`
	MsgID     int       `json:"msgId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// History pairs a conversation with its ordered messages.
type History struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []Message     `json:"messages"`
}
