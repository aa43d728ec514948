package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"personalblog/internal/models"
)

func TestIdentityFrom_EmptyContextIsAnonymous(t *testing.T) {
	identity := IdentityFrom(context.Background())

	assert.True(t, identity.IsAnonymous())
	assert.Nil(t, identity.User())
	assert.Empty(t, identity.UserID())
}

func TestWithIdentity(t *testing.T) {
	user := &models.User{UserID: "user-1", Email: "a@x.com"}

	ctx := WithIdentity(context.Background(), models.Authenticated(user))
	identity := IdentityFrom(ctx)

	assert.False(t, identity.IsAnonymous())
	assert.Equal(t, "user-1", identity.UserID())
	assert.Equal(t, "a@x.com", identity.Email())
}
