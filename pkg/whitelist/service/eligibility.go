package service

import "time"

type eligibilityReason int

const (
	reasonEligible eligibilityReason = iota
	reasonNewMember
	reasonCooldown
)

type eligibility struct {
	eligible bool
	reason   eligibilityReason
	retryAt  time.Time
}

// evaluateEligibility applies the cooldown policy. lastEvent is the member's
// join time when no whitelist history exists, otherwise the time of the most
// recent transaction. The account becomes eligible exactly at
// lastEvent + cooldown.
func evaluateEligibility(lastEvent time.Time, hasHistory bool, cooldown time.Duration, now time.Time) eligibility {
	retryAt := lastEvent.Add(cooldown)
	if now.Before(retryAt) {
		reason := reasonNewMember
		if hasHistory {
			reason = reasonCooldown
		}
		return eligibility{reason: reason, retryAt: retryAt}
	}
	return eligibility{eligible: true, reason: reasonEligible}
}
