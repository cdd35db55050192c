package service

import (
	"testing"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

func TestClassifyReply_Java(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  outcome
	}{
		{"added", "Added Steve_123 to the whitelist", outcomeAdded},
		{"already listed", "Player is already whitelisted", outcomeAlreadyListed},
		{"not found", "That player does not exist", outcomeNotFound},
		{"unrecognized", "Unknown or incomplete command", outcomeUnknown},
		{"empty", "", outcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyReply(whitelist.PlatformJava, tt.reply); got != tt.want {
				t.Errorf("classifyReply(java, %q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestClassifyReply_Bedrock(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  outcome
	}{
		{"added", "Player has been added to the whitelist!", outcomeAdded},
		{"already listed", "Player was already whitelisted", outcomeAlreadyListed},
		// Unresolvable gamertags never reach the console, so a not-found
		// style reply has no rule and falls through
		{"not found phrasing", "Could not find that player", outcomeUnknown},
		{"unrecognized", "some unexpected output", outcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyReply(whitelist.PlatformBedrock, tt.reply); got != tt.want {
				t.Errorf("classifyReply(bedrock, %q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

func TestClassifyReply_OrderMatters(t *testing.T) {
	// "is already whitelisted" also contains no success phrase, but a reply
	// carrying both phrases must resolve to the earlier rule
	reply := "Player is already whitelisted, nothing added to the whitelist"
	if got := classifyReply(whitelist.PlatformJava, reply); got != outcomeAlreadyListed {
		t.Errorf("expected outcomeAlreadyListed, got %v", got)
	}
}
