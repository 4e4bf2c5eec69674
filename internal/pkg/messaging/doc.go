// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// The goal is to keep business code independent from the underlying messaging
// system. NATS is the only driver today; implementations can be swapped
// without changing use-case code, as long as it relies on the interfaces in
// this package.
package messaging
