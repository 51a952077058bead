package utils

import "golang.org/x/crypto/bcrypt"

// Bounds for the configured bcrypt cost.  Costs below bcrypt's default are
// raised so a misconfigured deployment cannot weaken stored hashes; the
// upper bound keeps a fat-fingered cost from stalling every registration.
const (
	minHashCost = bcrypt.DefaultCost
	maxHashCost = 14
)

// HashPassword hashes a plaintext password with bcrypt at the configured
// cost, clamped to [minHashCost, maxHashCost].
func HashPassword(plain string, cost int) (string, error) {
	if cost < minHashCost {
		cost = minHashCost
	}
	if cost > maxHashCost {
		cost = maxHashCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored hash against a candidate password.  It
// returns nil on a match and bcrypt's mismatch error otherwise, so callers
// can treat any non-nil result as invalid credentials.
func VerifyPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
