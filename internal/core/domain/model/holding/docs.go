// Package holding models holding sessions ("stabulation"): batched
// pre-slaughter staging of animals of one species at one site.
//
//	        admit/withdraw (membership only)
//	             ╲
//	(create) → OPEN ──finalize──→ CLOSED
//	              ╲──cancel ────→ CANCELLED
package holding
