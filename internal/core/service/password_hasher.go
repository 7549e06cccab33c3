package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the clinic has always used; raising it
// invalidates nothing since bcrypt embeds the cost in each digest.
const bcryptCost = 10

// BcryptHasher implements ports.PasswordHasher on top of bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Check fails closed: any bcrypt error, including a malformed digest, is
// reported as a mismatch. The comparison itself is constant-time.
func (h *BcryptHasher) Check(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
