// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package factors

import (
	"strings"

	"github.com/stayloop/concierge/internal/recommend"
)

// Point values for the profile/label factor.
const (
	profileCategoryPoints = 10.0
	labelMatchPoints      = 8.0
	labelMatchCap         = 16.0 // at most two labels count
	profileMismatchFamily = -12.0
	profileMismatchOther  = -10.0
)

// preferredCategories maps each profile type to the normalized item
// categories it favors.
var preferredCategories = map[recommend.ProfileType][]string{
	recommend.ProfileFamily:    {"family", "family_activities", "entertainment", "nature", "tours"},
	recommend.ProfileCouple:    {"romantic", "fine_dining", "culture", "wellness", "tours"},
	recommend.ProfileAdventure: {"adventure", "sports", "outdoor", "nature"},
	recommend.ProfileWellness:  {"wellness", "spa", "yoga", "nature"},
	recommend.ProfileBusiness:  {"fine_dining", "culture", "tours"},
}

// mismatchCategories maps profile types to categories that actively count
// against an item (known bad pairings, e.g. intense activities for
// families).
var mismatchCategories = map[recommend.ProfileType][]string{
	recommend.ProfileFamily:   {"adventure", "intense", "nightlife"},
	recommend.ProfileWellness: {"adventure", "sports", "nightlife"},
}

// ProfileFit scores the match between the guest's profile type / interest
// labels and the item's category / labels.
type ProfileFit struct{}

// NewProfileFit creates the profile factor.
func NewProfileFit() *ProfileFit { return &ProfileFit{} }

// Name returns the factor identifier.
func (*ProfileFit) Name() string { return "profile" }

// Score implements recommend.FactorScorer.
func (*ProfileFit) Score(item *recommend.CatalogItem, guest *recommend.GuestContext, _ *recommend.EnvironmentContext) recommend.FactorResult {
	var res recommend.FactorResult
	category := normalizeCategory(item.Category)

	if containsString(preferredCategories[guest.ProfileType], category) {
		res.Contribution += profileCategoryPoints
		res.Reasons = append(res.Reasons, recommend.ReasonProfileCategory)
	}

	labelBonus := 0.0
	for _, label := range guest.Labels {
		if item.HasLabel(label) {
			labelBonus += labelMatchPoints
		}
	}
	if labelBonus > labelMatchCap {
		labelBonus = labelMatchCap
	}
	if labelBonus > 0 {
		res.Contribution += labelBonus
		res.Reasons = append(res.Reasons, recommend.ReasonLabelMatch)
	}

	if containsString(mismatchCategories[guest.ProfileType], category) {
		if guest.ProfileType == recommend.ProfileFamily {
			res.Contribution += profileMismatchFamily
		} else {
			res.Contribution += profileMismatchOther
		}
	}

	return res
}

// normalizeCategory lowercases a category and replaces spaces so free-text
// catalog categories compare against the static tables.
func normalizeCategory(category string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
