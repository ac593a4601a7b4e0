package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidMSISDN is returned for numbers that are not Kenyan mobile numbers.
var ErrInvalidMSISDN = errors.New("phone number must be a Kenyan mobile number")

var msisdnPattern = regexp.MustCompile(`^254[17]\d{8}$`)

// NormalizeMSISDN converts 07XXXXXXXX, +2547XXXXXXXX, 2547XXXXXXXX or 7XXXXXXXX
// (and the 01 ranges) to the 2547XXXXXXXX form the payment gateway expects.
func NormalizeMSISDN(phone string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	p = strings.TrimPrefix(p, "+")
	switch {
	case strings.HasPrefix(p, "0"):
		p = "254" + p[1:]
	case len(p) == 9:
		p = "254" + p
	}
	if !msisdnPattern.MatchString(p) {
		return "", ErrInvalidMSISDN
	}
	return p, nil
}
