// Package cli provides the interactive HR console.
//
// It wires configuration, the session store, the API gateway and services
// into a REPL. On start the profile of a stored session is loaded; afterwards
// every change of the session, made here or by another console sharing the
// same profile, re-fetches or drops it.
//
// Key features:
//   - Login / Register / Logout, whoami and token inspection
//   - Openings: list, show, add, edit, delete
//   - Employees: list, show, add, edit
//   - Candidates of an opening and CV downloads
//
// Commands that need a session check the store first; HR-only commands also
// check the effective role of the profile. The REPL is started via App.Run,
// which blocks until the user exits.
package cli
