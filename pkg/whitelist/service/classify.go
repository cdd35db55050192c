package service

import (
	"strings"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

// outcome is the interpreted result of a console whitelist command
type outcome int

const (
	outcomeUnknown outcome = iota
	outcomeAdded
	outcomeAlreadyListed
	outcomeNotFound
)

type phraseRule struct {
	substring string
	outcome   outcome
}

// The console replies with free-form text, so the reply phrasing is the only
// signal. Rules are ordered; the first matching substring wins.
var javaRules = []phraseRule{
	{"That player does not exist", outcomeNotFound},
	{"Player is already whitelisted", outcomeAlreadyListed},
	{"to the whitelist", outcomeAdded},
}

// The bedrock table has no not-found phrase: an unresolvable gamertag is
// rejected by the XUID lookup before anything reaches the console.
var bedrockRules = []phraseRule{
	{"was already whitelisted", outcomeAlreadyListed},
	{"has been added to the whitelist", outcomeAdded},
}

// classifyReply maps raw console reply text to an outcome using the phrase
// table for the given platform
func classifyReply(platform whitelist.Platform, reply string) outcome {
	rules := javaRules
	if platform == whitelist.PlatformBedrock {
		rules = bedrockRules
	}
	for _, rule := range rules {
		if strings.Contains(reply, rule.substring) {
			return rule.outcome
		}
	}
	return outcomeUnknown
}
