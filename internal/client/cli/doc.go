// Package cli provides the interactive StudyBuddy command-line client.
//
// It wires configuration, local storage, the backend client and the
// services into an App, restores the previous session and runs a REPL.
// When a metrics address is configured, a /metrics endpoint is served
// next to the REPL; both run under one errgroup and stop together.
//
// Key features:
//   - Sign up / Log in / Log out
//   - Profile setup with course and major resolution
//   - Explore candidates and like or dislike them
//   - Matches list
//   - Study calendar: events and availability
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
