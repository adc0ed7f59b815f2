package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a user-shaped struct with fabricator defaults. Unless a
// caller provides EncryptedPassword, a bcrypt hash of "12345678" is used so
// the account is loginable in tests.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	if len(customData) > 0 {
		hasEncryptedPassword := false

		for _, data := range customData {
			if _, exists := data["EncryptedPassword"]; exists {
				hasEncryptedPassword = true
				break
			}
		}

		if !hasEncryptedPassword {
			encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)

			customData = append(customData, map[string]any{
				"EncryptedPassword": string(encryptedPassword),
			})
		}
	}

	return instance.Build(customData...)
}

// NewMemo builds a memo-shaped struct with fabricator defaults.
func NewMemo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(customData...)
}
