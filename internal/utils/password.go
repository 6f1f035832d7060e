package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the longest password bcrypt can represent.  Longer
// inputs would be silently truncated by the comparison.
const MaxPasswordBytes = 72

// HashPassword returns a bcrypt verifier for plain using the given cost.
// The random salt and the cost are embedded in the returned string, so no
// separate salt storage is needed.  Passwords over MaxPasswordBytes fail
// with bcrypt.ErrPasswordTooLong.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", bcrypt.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.  A candidate longer
// than MaxPasswordBytes never matches, but the comparison still runs on its
// first MaxPasswordBytes so both outcomes cost one bcrypt evaluation.
func VerifyPassword(hash, plain string) bool {
	candidate := plain
	if len(candidate) > MaxPasswordBytes {
		candidate = candidate[:MaxPasswordBytes]
	}
	ok := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	return ok && len(plain) <= MaxPasswordBytes
}
