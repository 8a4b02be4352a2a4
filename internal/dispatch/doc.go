// Package dispatch turns user actions on boxes into distrobox invocations.
//
// Service is the dispatcher: it runs the tool for a named box and reports
// failures as *ActionFailedError. Controller sits in front of it and owns
// the per-action handlers, delete confirmation and result notification, so
// front-ends only bind a row and an action.
package dispatch
