package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateState returns a cryptographically random OAuth state value.
// Never reuse states: one per begin-auth request.
func GenerateState() (string, error) {
	return gonanoid.New(32)
}
