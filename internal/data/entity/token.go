package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque login token with a sliding expiry window:
// every authenticated request bumps LastAction.
type AuthToken struct {
	BaseSimple
	UserID     uuid.UUID `db:"user_id"`
	Token      uuid.UUID `db:"token"`
	LastAction time.Time `db:"last_action"`
}
