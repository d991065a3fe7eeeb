// Package risk implements the transaction privacy-risk scorer.
//
// Given the input UTXOs and destination addresses of a candidate
// transaction, [Assess] classifies the transaction as low, medium, or high
// privacy risk and explains every triggered heuristic with a reason and a
// recommendation.
//
// Each heuristic is an independent check producing findings with an
// escalation floor; the final label is the fold of all findings through a
// monotonic max-severity reducer, so evaluation order cannot downgrade a
// label and individual heuristics are testable in isolation.
//
// The scorer is a pure function over its arguments: no shared state, no
// I/O, safe for concurrent callers.
package risk

import (
	"strings"
	"time"
)

// Default heuristic thresholds.
//
// The windows and the distinct-amount ratio are tuned constants, not
// fundamental ones; they are carried on [Profile] so deployments can adjust
// them via configuration without touching the scorer.
const (
	// DefaultRecentWindowDays is the span under which inputs are considered
	// temporally clustered (informational only).
	DefaultRecentWindowDays = 7

	// DefaultLongHoldWindowDays is the span above which combining inputs
	// reveals long-term holding patterns.
	DefaultLongHoldWindowDays = 90

	// DefaultAmountDiversityRatio is the minimum ratio of distinct input
	// amounts to input count before repeated amounts become a fingerprint.
	DefaultAmountDiversityRatio = 0.5
)

// Profile carries the tunable parameters of the scorer.
type Profile struct {
	// RecentWindowDays flags inputs created within a short span (informational).
	RecentWindowDays int `toml:"recent_window_days" json:"recent_window_days"`

	// LongHoldWindowDays flags inputs spanning a long holding period.
	LongHoldWindowDays int `toml:"long_hold_window_days" json:"long_hold_window_days"`

	// AmountDiversityRatio is the distinct-amount ratio threshold.
	AmountDiversityRatio float64 `toml:"amount_diversity_ratio" json:"amount_diversity_ratio"`

	// KYCTags are tags that mark identity-linked (exchange-sourced) coins.
	KYCTags []string `toml:"kyc_tags" json:"kyc_tags"`

	// PersonalTags are tags that mark personally-linked coins.
	PersonalTags []string `toml:"personal_tags" json:"personal_tags"`
}

// DefaultProfile returns the standard scoring profile.
func DefaultProfile() Profile {
	return Profile{
		RecentWindowDays:     DefaultRecentWindowDays,
		LongHoldWindowDays:   DefaultLongHoldWindowDays,
		AmountDiversityRatio: DefaultAmountDiversityRatio,
		KYCTags:              []string{"exchange", "kyc", "custodial"},
		PersonalTags:         []string{"personal", "gift", "p2p", "peer-to-peer"},
	}
}

// Normalize fills zero-valued fields with defaults so that a partially
// specified config profile behaves sensibly.
func (p Profile) Normalize() Profile {
	def := DefaultProfile()
	if p.RecentWindowDays <= 0 {
		p.RecentWindowDays = def.RecentWindowDays
	}
	if p.LongHoldWindowDays <= 0 {
		p.LongHoldWindowDays = def.LongHoldWindowDays
	}
	if p.AmountDiversityRatio <= 0 {
		p.AmountDiversityRatio = def.AmountDiversityRatio
	}
	if len(p.KYCTags) == 0 {
		p.KYCTags = def.KYCTags
	}
	if len(p.PersonalTags) == 0 {
		p.PersonalTags = def.PersonalTags
	}
	return p
}

// recentWindow returns the recent-span threshold as a duration.
func (p *Profile) recentWindow() time.Duration {
	return time.Duration(p.RecentWindowDays) * 24 * time.Hour
}

// longHoldWindow returns the long-hold threshold as a duration.
func (p *Profile) longHoldWindow() time.Duration {
	return time.Duration(p.LongHoldWindowDays) * 24 * time.Hour
}

// isKYCTag reports whether tag matches one of the profile's KYC-like tags.
func (p *Profile) isKYCTag(tag string) bool {
	return containsFold(p.KYCTags, tag)
}

// isPersonalTag reports whether tag matches one of the personal-like tags.
func (p *Profile) isPersonalTag(tag string) bool {
	return containsFold(p.PersonalTags, tag)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
