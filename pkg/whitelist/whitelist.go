// Package whitelist contains the domain types for whitelist requests and
// their persisted transactions.
package whitelist

import "time"

// Platform identifies which edition of the game the player uses
type Platform string

const (
	// PlatformJava is the Java edition; players are whitelisted by username
	PlatformJava Platform = "java"
	// PlatformBedrock is the Bedrock edition; players are whitelisted by
	// their resolved UUID-form identity
	PlatformBedrock Platform = "bedrock"
)

// Valid reports whether p is a recognized platform
func (p Platform) Valid() bool {
	return p == PlatformJava || p == PlatformBedrock
}

// Transaction is one successful whitelist action. Transactions are
// append-only; the greatest ID for a Discord account defines its last
// whitelist time for cooldown purposes.
type Transaction struct {
	ID           int64
	DiscordID    string
	Username     string
	Platform     Platform
	UUID         string // set iff Platform == PlatformBedrock
	TimeAccessed time.Time
}

// Request is one parsed whitelist command invocation. Platform is kept as
// the raw option value; the orchestrator decides how to treat values it
// does not recognize.
type Request struct {
	DiscordID string
	JoinedAt  time.Time
	Username  string
	Platform  string
}

// Reply is the user-visible outcome of a request
type Reply struct {
	Message   string
	Ephemeral bool
}
