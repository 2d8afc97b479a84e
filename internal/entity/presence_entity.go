package entity

import (
	"time"

	"github.com/google/uuid"
)

// Presence is an advisory marker that a user holds an active realtime
// connection. It is not a lock; losing it only degrades the "inactive user"
// diagnostics.
type Presence struct {
	UserId       uuid.UUID
	ConnectionId string
	ConnectedAt  time.Time
}
