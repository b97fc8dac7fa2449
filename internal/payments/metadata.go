package payments

import (
	"fmt"
	"strconv"
)

// Metadata keys used to tie provider objects back to local rows. The webhook
// reconciler has no other linkage, so every object we create carries them.
const (
	MetaUserID          = "user_id"
	MetaPlanID          = "plan_id"
	MetaBillingInterval = "billing_interval"
)

// LinkageMetadata builds the user/plan/interval tags for checkout sessions
// and subscriptions.
func LinkageMetadata(userID, planID uint, interval string) map[string]string {
	return map[string]string{
		MetaUserID:          fmt.Sprint(userID),
		MetaPlanID:          fmt.Sprint(planID),
		MetaBillingInterval: interval,
	}
}

// ParseUserID reads the user_id tag out of provider metadata.
// Returns 0 when absent or malformed.
func ParseUserID(metadata map[string]string) uint {
	return parseUintTag(metadata, MetaUserID)
}

// ParsePlanID reads the plan_id tag out of provider metadata.
// Returns 0 when absent or malformed.
func ParsePlanID(metadata map[string]string) uint {
	return parseUintTag(metadata, MetaPlanID)
}

func parseUintTag(metadata map[string]string, key string) uint {
	if metadata == nil {
		return 0
	}
	v, err := strconv.ParseUint(metadata[key], 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
