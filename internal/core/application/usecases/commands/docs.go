// Package commands contains business operations that change system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is built through its constructor, which validates the input, and is
// executed by a handler that owns the collaborators (gateway, publishers, repository).
package commands
