// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A typed Claims wrapper (registered claims + strongly-typed payload).
//   - A symmetric HS512 implementation issuing access/refresh token pairs,
//     each class signed with its own secret.
//   - Context helpers for storing and retrieving authenticated claims.
package jwt
