package domain

import "time"

// AuthEventKind names an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventLoginSucceeded  AuthEventKind = "login_succeeded"
	EventLoginFailed     AuthEventKind = "login_failed"
	EventTokenIssued     AuthEventKind = "token_issued"
	EventTokenReused     AuthEventKind = "token_reused"
	EventPasswordChanged AuthEventKind = "password_changed"
	EventUserRegistered  AuthEventKind = "user_registered"
)

// AuthEvent is an append-only audit record. It never contains secrets.
type AuthEvent struct {
	Kind       AuthEventKind
	UserID     int64 // zero when the user could not be resolved
	Email      string
	TokenID    int64
	RemoteIP   string
	OccurredAt time.Time
}
