package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSession struct {
	auth    bool
	loadErr error
	loads   int
}

func (f *fakeSession) LoadUser(context.Context) error {
	f.loads++
	return f.loadErr
}

func (f *fakeSession) IsAuth() bool { return f.auth }

func TestGuard_BeforeEach(t *testing.T) {
	tests := []struct {
		name  string
		auth  bool
		to    Name
		query map[string]string
		want  Name
	}{
		{"protected route anonymous", false, Dashboard, nil, Login},
		{"protected route signed in", true, ManageUsers, nil, ManageUsers},
		{"public route anonymous", false, Directory, nil, Directory},
		{"login when signed in", true, Login, nil, Dashboard},
		{"registration when signed in", true, Registration, nil, Dashboard},
		{"password reset when signed in", true, PasswordReset, nil, ProfilePasswordEdit},
		{"password reset anonymous", false, PasswordReset, nil, PasswordReset},
		{"reset confirm without query", false, PasswordResetConfirm, nil, NotFound},
		{"reset confirm empty query", false, PasswordResetConfirm, map[string]string{"uid": "", "token": ""}, NotFound},
		{"reset confirm uid only", false, PasswordResetConfirm, map[string]string{"uid": "1"}, PasswordResetConfirm},
		{"reset confirm token only", false, PasswordResetConfirm, map[string]string{"token": "t"}, PasswordResetConfirm},
		{"reset confirm complete", false, PasswordResetConfirm, map[string]string{"uid": "1", "token": "t"}, PasswordResetConfirm},
		{"unknown route", true, Name("Nowhere"), nil, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSession{auth: tt.auth}
			g := NewGuard(s, nil)
			assert.Equal(t, tt.want, g.BeforeEach(context.Background(), tt.to, tt.query))
			assert.Equal(t, 1, s.loads)
		})
	}
}

func TestGuard_LoadUserFailureTreatedAsAnonymous(t *testing.T) {
	s := &fakeSession{loadErr: errors.New("api down")}
	g := NewGuard(s, nil)
	assert.Equal(t, Login, g.BeforeEach(context.Background(), Commissions, nil))
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(Documents)
	assert.True(t, ok)
	assert.True(t, r.RequiresAuth)

	_, ok = Lookup("missing")
	assert.False(t, ok)
}
