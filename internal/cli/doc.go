// Package cli provides the interactive Eazy-Shop terminal front end.
//
// It plays the part of the sign-in / sign-up window: a small REPL collects
// a username and password, calls the authenticator and prints the same
// messages the desktop dialogs used to show. A successful login ends the
// REPL and hands the username, wrapped in a single-use token, to the
// dashboard view.
//
// Commands:
//   - help            show available commands
//   - signup          create an account (alias: register)
//   - login           sign in (alias: signin)
//   - exit | quit     leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or signs in.
package cli
