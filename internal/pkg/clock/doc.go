// Package clock is a tiny time abstraction.
//
// Code that depends on Clocker instead of time.Now can be tested against a
// fixed timestamp, which matters anywhere TTLs or expiry windows are checked.
package clock
