// Package service holds the drinks business rules.
//
// It sits between the handlers and the repositories: it validates
// candidate drinks before they are stored, maps missing records to
// client errors and reports every action to metrics and notifications.
package service
