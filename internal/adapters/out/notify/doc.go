// Package notify delivers committed domain events outside the process.
//
// Publishers are called by the unit of work after a successful commit. A
// failing publisher is logged there and never undoes the command, so every
// implementation here reports errors but does not retry.
package notify
