package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errInvalidPassword = errors.New("invalid password")

func hashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(result), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
