// Package animal models tagged livestock individuals and the StatusManager,
// the single authority over their lifecycle status.
//
// Transition table (from -> to):
//
//	ALIVE      -> IN_HOLDING, SLAUGHTERED, DEAD, SOLD
//	IN_HOLDING -> ALIVE, SLAUGHTERED
//
// Terminal statuses (SLAUGHTERED, DEAD, SOLD) admit no outgoing transition.
package animal
