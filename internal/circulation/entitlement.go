// internal/circulation/entitlement.go
package circulation

import (
	"time"

	"libtrack/internal/membership"
)

// CanIssue decides whether a user may issue a new item as of the given time.
// A nil subscription expiry means no restriction. Outstanding fines never
// block issuance; fine payment is an independent action.
func CanIssue(user *membership.User, asOf time.Time) bool {
	if user.SubscriptionEnd == nil {
		return true
	}
	return !asOf.After(*user.SubscriptionEnd)
}
