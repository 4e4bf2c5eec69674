package hash

import "fmt"

// Hash is the contract for hashing and verifying secrets.
type Hash interface {
	// Hash takes a plaintext string and returns its hashed representation.
	Hash(str string) ([]byte, error)
	// Verify checks if the given plaintext string matches the hashed value.
	Verify(hashed, str string) bool
}

// Driver selects a password hashing implementation.
type Driver string

const (
	// DriverBcrypt selects the bcrypt implementation.
	DriverBcrypt Driver = "bcrypt"
	// DriverArgon2id selects the Argon2id implementation.
	DriverArgon2id Driver = "argon2id"
)

// New constructs a password hasher for the configured driver.
func New(driver Driver, cost int, pepper string) (Hash, error) {
	switch driver {
	case DriverBcrypt:
		return NewBcrypt(cost, pepper), nil
	case DriverArgon2id:
		return NewArgon2id(pepper), nil
	default:
		return nil, fmt.Errorf("unsupported hash driver: %s", driver)
	}
}
