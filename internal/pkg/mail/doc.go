// Package mail defines the contract for sending email.
//
// Use cases depend on the Mail interface and the Message payload only; the
// concrete delivery mechanism (SMTP in this repo) stays swappable.
package mail
