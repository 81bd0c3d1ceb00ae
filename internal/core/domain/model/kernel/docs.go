// Package kernel holds the primitives shared by every livestock aggregate:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Species: the closed set of animal species with per-species capacity
//   - Actor: the explicit identity of whoever issues a command
//   - DomainEvent / EventRecorder: events recorded by aggregates and
//     published after the enclosing transaction commits
package kernel
