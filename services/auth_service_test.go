package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	svc := NewAuthService("admin", hash)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{name: "valid", input: LoginInput{Username: "admin", Password: "correct horse"}},
		{name: "wrong password", input: LoginInput{Username: "admin", Password: "battery staple"}, wantErr: ErrInvalidCredentials},
		{name: "wrong user", input: LoginInput{Username: "root", Password: "correct horse"}, wantErr: ErrInvalidCredentials},
		{name: "empty", input: LoginInput{}, wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", user)
		})
	}
}

func TestAuthService_NoHashRejectsEverything(t *testing.T) {
	_, err := NewAuthService("admin", "").Login(context.Background(), LoginInput{Username: "admin", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
