package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// GenerateNumericOTP returns a random code of the given length made of digits.
func GenerateNumericOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid OTP length %d", length)
	}
	digits := make([]byte, length)
	ten := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashOTP hashes an OTP code for storage.
func HashOTP(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}
	return string(hash), nil
}

// CompareOTP reports whether code matches the stored hash.
func CompareOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

var codePattern = regexp.MustCompile(`\d{4,}`)

// MaskCodes hides every run of four or more digits so codes never reach production logs.
func MaskCodes(message string) string {
	return codePattern.ReplaceAllStringFunc(message, func(code string) string {
		return strings.Repeat("*", len(code))
	})
}

// SendSMSMessage delivers a text message to the given phone number.
// Replace the body with an SMS gateway integration; for now the message is logged,
// in full only at debug level.
func SendSMSMessage(phoneNumber, message string) error {
	logger := GetLogger().Sugar()
	logger.Infof("Sending SMS to %s: %s", phoneNumber, MaskCodes(message))
	logger.Debugf("SMS body for %s: %s", phoneNumber, message)
	return nil
}
