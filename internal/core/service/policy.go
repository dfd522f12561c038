package service

import "github.com/simplebanking/banking-system/internal/core/domain"

// CanOperateBalance reports whether the actor's role permits balance
// operations at all. Admins manage the user directory and never touch
// balances, whatever account is targeted.
func CanOperateBalance(actor domain.Actor) bool {
	return actor.IsOwner()
}

// CanAccessAccount reports whether the actor may read or mutate an account
// owned by ownerID. Ownership is the only criterion beyond the role gate:
// an owner operates exactly their own accounts.
func CanAccessAccount(actor domain.Actor, ownerID string) bool {
	return CanOperateBalance(actor) && actor.UserID == ownerID
}
