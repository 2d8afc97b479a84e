package dto

import "github.com/google/uuid"

// Frame senders
const (
	FrameSenderYou = "you"
	FrameSenderBot = "bot"
)

// Frame types
const (
	FrameTypeStream = "stream"
	FrameTypeStart  = "start"
	FrameTypeEnd    = "end"
	FrameTypeError  = "error"
)

// WSUserMessage is the inbound realtime payload. UserId is overwritten from
// the connection path.
type WSUserMessage struct {
	Message   string     `json:"message"`
	SessionId *uuid.UUID `json:"session_id"`
	UserId    uuid.UUID  `json:"user_id"`
}

// ChatFrame is one discrete JSON unit sent to the peer.
type ChatFrame struct {
	Sender    string     `json:"sender"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	MessageId string     `json:"message_id"`
	Id        string     `json:"id"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}
