// Package order provides the purchase order aggregate: a client's demand
// addressed to a site, quantified in heads or kilograms of live animals or
// carcasses, with an optional fifth quarter (offal).
//
// Key business rules:
//   - Orders start as DRAFT and progress one step at a time to DELIVERED
//   - Any non-terminal order can be CANCELLED
//   - Only DRAFT and CONFIRMED orders can be edited; only DRAFT orders can be deleted
//   - Terminal orders are archived
package order
