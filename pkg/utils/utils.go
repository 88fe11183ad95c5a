package utils

import (
	"crypto/rand"
	"math/big"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password using bcrypt with cost 14.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// GenerateAccountNumber returns a random 10-digit account number.
func GenerateAccountNumber() string {
	const digits = "0123456789"
	buf := make([]byte, 10)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			buf[i] = '0'
			continue
		}
		buf[i] = digits[n.Int64()]
	}
	return string(buf)
}
