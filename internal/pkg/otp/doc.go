// Package otp provides helpers for generating and matching one-time
// verification codes.
//
// Codes are short random numeric strings delivered out of band (email) and
// compared in constant time against the user's submission.
package otp
