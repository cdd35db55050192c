// Package service implements the whitelist request pipeline: eligibility,
// username validation, identity resolution, console dispatch, reply
// classification and transaction persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/internal/metrics"
	"github.com/angelsmp/discord-whitelist/pkg/console"
	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
	"github.com/angelsmp/discord-whitelist/pkg/whiteliststore"
	"github.com/angelsmp/discord-whitelist/pkg/xbox"
)

// Store is the narrow data-access interface for the whitelist service.
// Defined here to keep the service decoupled from whiteliststore
// implementation details.
type Store interface {
	LatestTransaction(ctx context.Context, discordID string) (*whitelist.Transaction, error)
	Append(ctx context.Context, tx *whitelist.Transaction) error
}

// Service defines the interface for the whitelist business logic
type Service interface {
	Whitelist(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error)
}

type whitelistService struct {
	store         Store
	console       console.Console
	lookup        xbox.Lookup
	cooldown      time.Duration
	helpChannelID string
	logger        *zap.Logger
}

// NewService creates a new whitelist service
func NewService(
	store Store,
	con console.Console,
	lookup xbox.Lookup,
	cooldown time.Duration,
	helpChannelID string,
	logger *zap.Logger,
) Service {
	return &whitelistService{
		store:         store,
		console:       con,
		lookup:        lookup,
		cooldown:      cooldown,
		helpChannelID: helpChannelID,
		logger:        logger,
	}
}

// Whitelist processes one whitelist command invocation.
//
// The pipeline:
//  1. Loads the account's most recent transaction (or falls back to the
//     guild join date) and applies the cooldown policy
//  2. Validates the requested username
//  3. Resolves bedrock gamertags to a UUID-form identity
//  4. Dispatches the allow-list command to the game server console
//  5. Classifies the console reply and persists a transaction on success
//
// Failures of upstream dependencies never surface to the caller; they are
// logged and absorbed into the generic support reply so the invoking user
// always receives a well-formed response.
func (s *whitelistService) Whitelist(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error) {
	platform := metricPlatform(req.Platform)

	lastEvent := req.JoinedAt
	hasHistory := false
	last, err := s.store.LatestTransaction(ctx, req.DiscordID)
	switch {
	case err == nil:
		lastEvent = last.TimeAccessed
		hasHistory = true
	case errors.Is(err, whiteliststore.ErrNoTransactions):
		// First request from this account, measure against the join date
	default:
		s.logger.Error("Failed to load whitelist history",
			zap.String("discord_id", req.DiscordID),
			zap.Error(err),
		)
		return s.support(platform, "store_error"), nil
	}

	elig := evaluateEligibility(lastEvent, hasHistory, s.cooldown, time.Now())
	if !elig.eligible {
		metrics.WhitelistRequests.WithLabelValues(platform, "ineligible").Inc()
		return ephemeral(s.cooldownMessage(elig)), nil
	}

	if err := validateUsername(req.Username); err != nil {
		metrics.WhitelistRequests.WithLabelValues(platform, "invalid_username").Inc()
		if errors.Is(err, errUsernameLength) {
			return ephemeral("Your username is too long or too short, it must be between 3 and 16 characters."), nil
		}
		return ephemeral("You have special characters in your username, these aren't allowed.\nOnly allowed are `A-Z`, `a-z`, `0-9`, and `_`."), nil
	}

	switch whitelist.Platform(req.Platform) {
	case whitelist.PlatformJava:
		return s.whitelistJava(ctx, req)
	case whitelist.PlatformBedrock:
		return s.whitelistBedrock(ctx, req)
	default:
		s.logger.Warn("Unsupported platform requested", zap.String("platform", req.Platform))
		return s.support(platform, "unsupported_platform"), nil
	}
}

func (s *whitelistService) whitelistJava(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error) {
	reply, err := s.console.Send(ctx, "whitelist add "+req.Username)
	if err != nil {
		s.logger.Error("Console dispatch failed",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		return s.support(string(whitelist.PlatformJava), "console_error"), nil
	}
	return s.finish(ctx, req, whitelist.PlatformJava, "", reply)
}

func (s *whitelistService) whitelistBedrock(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error) {
	xuid, err := s.lookup.LookupXUID(ctx, req.Username)
	if errors.Is(err, xbox.ErrProfileNotFound) {
		metrics.WhitelistRequests.WithLabelValues(string(whitelist.PlatformBedrock), "not_found").Inc()
		return ephemeral(notFoundMessage(req.Username)), nil
	}
	if err != nil {
		s.logger.Error("Gamertag lookup failed",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		return s.support(string(whitelist.PlatformBedrock), "lookup_error"), nil
	}

	id, err := xbox.XUIDToUUID(xuid)
	if err != nil {
		s.logger.Error("Invalid XUID from profile lookup",
			zap.String("username", req.Username),
			zap.String("xuid", xuid),
			zap.Error(err),
		)
		return s.support(string(whitelist.PlatformBedrock), "lookup_error"), nil
	}

	reply, err := s.console.Send(ctx, "fwhitelist add "+id)
	if err != nil {
		s.logger.Error("Console dispatch failed",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		return s.support(string(whitelist.PlatformBedrock), "console_error"), nil
	}
	return s.finish(ctx, req, whitelist.PlatformBedrock, id, reply)
}

// finish classifies the console reply and records a transaction when the
// player was actually added. Replies for already-listed and unknown players
// leave no trace in the history, so they never reset the cooldown.
func (s *whitelistService) finish(ctx context.Context, req *whitelist.Request, platform whitelist.Platform, uuid, consoleReply string) (*whitelist.Reply, error) {
	switch classifyReply(platform, consoleReply) {
	case outcomeNotFound:
		metrics.WhitelistRequests.WithLabelValues(string(platform), "not_found").Inc()
		return ephemeral(notFoundMessage(req.Username)), nil

	case outcomeAlreadyListed:
		metrics.WhitelistRequests.WithLabelValues(string(platform), "already_whitelisted").Inc()
		return ephemeral(fmt.Sprintf("`%s` is already on the whitelist!", req.Username)), nil

	case outcomeAdded:
		metrics.WhitelistRequests.WithLabelValues(string(platform), "success").Inc()
		tx := &whitelist.Transaction{
			DiscordID: req.DiscordID,
			Username:  req.Username,
			Platform:  platform,
			UUID:      uuid,
		}
		if err := s.store.Append(ctx, tx); err != nil {
			// The player is on the allow list at this point, so the reply
			// stays a success; only the cooldown history is lost.
			s.logger.Error("Failed to record whitelist transaction",
				zap.String("discord_id", req.DiscordID),
				zap.String("username", req.Username),
				zap.Error(err),
			)
		}
		return ephemeral(fmt.Sprintf("Success! `%s` has been added to the whitelist.", req.Username)), nil

	default:
		s.logger.Warn("Unrecognized console reply",
			zap.String("platform", string(platform)),
			zap.String("reply", consoleReply),
		)
		return s.support(string(platform), "unknown_reply"), nil
	}
}

func (s *whitelistService) cooldownMessage(e eligibility) string {
	days := int(s.cooldown.Hours() / 24)
	stamp := fmt.Sprintf("<t:%d:R>", unixCeil(e.retryAt))
	if e.reason == reasonNewMember {
		return fmt.Sprintf("You need to be in this Discord server for at least %d days to be whitelisted on the SMP.\nYou can whitelist in %s.", days, stamp)
	}
	return fmt.Sprintf("You need to wait at least %d days to whitelist another account on the SMP.\nYou can whitelist again in %s.", days, stamp)
}

// support counts the outcome and returns the generic support reply
func (s *whitelistService) support(platform, outcome string) *whitelist.Reply {
	metrics.WhitelistRequests.WithLabelValues(platform, outcome).Inc()
	if s.helpChannelID == "" {
		return ephemeral("Something went wrong, please try again later.")
	}
	return ephemeral(fmt.Sprintf("Something went wrong, please react to `Angel SMP Support` in <#%s> for help.", s.helpChannelID))
}

func notFoundMessage(username string) string {
	return fmt.Sprintf("Could not find that username (`%s`), please check your username and spelling, then try again.", username)
}

func ephemeral(message string) *whitelist.Reply {
	return &whitelist.Reply{Message: message, Ephemeral: true}
}

// metricPlatform bounds the platform metric label to known values
func metricPlatform(p string) string {
	if whitelist.Platform(p).Valid() {
		return p
	}
	return "other"
}

// unixCeil rounds a timestamp up to whole seconds, matching how the chat
// platform renders relative times
func unixCeil(t time.Time) int64 {
	if t.Nanosecond() > 0 {
		return t.Unix() + 1
	}
	return t.Unix()
}
