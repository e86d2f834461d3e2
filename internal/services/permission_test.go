package services

import (
	"context"
	"testing"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionEvaluator_Authorize(t *testing.T) {
	m := newMemStore()
	m.grant("ev-1", "owner", domain.RoleOwner)
	m.grant("ev-1", "editor", domain.RoleEditor)
	m.grant("ev-1", "viewer", domain.RoleViewer)
	perms := NewPermissionEvaluator(fakeEditorRepo{m})

	tests := []struct {
		user   string
		action domain.Action
		want   error
	}{
		{"owner", domain.ActionView, nil},
		{"owner", domain.ActionEdit, nil},
		{"owner", domain.ActionManage, nil},
		{"editor", domain.ActionView, nil},
		{"editor", domain.ActionEdit, nil},
		{"editor", domain.ActionManage, domain.ErrForbidden},
		{"viewer", domain.ActionView, nil},
		{"viewer", domain.ActionEdit, domain.ErrForbidden},
		{"viewer", domain.ActionManage, domain.ErrForbidden},
		{"stranger", domain.ActionView, domain.ErrForbidden},
		{"", domain.ActionView, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.user+"/"+tt.action.String(), func(t *testing.T) {
			err := perms.Authorize(context.Background(), tt.user, "ev-1", tt.action)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestPermissionEvaluator_HasRole_ReflectsGrantChanges(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	repo := fakeEditorRepo{m}
	perms := NewPermissionEvaluator(repo)

	ok, err := perms.HasRole(ctx, "u1", "ev-1", domain.RoleOwner, domain.RoleEditor)
	require.NoError(t, err)
	assert.False(t, ok)

	m.grant("ev-1", "u1", domain.RoleEditor)
	ok, err = perms.HasRole(ctx, "u1", "ev-1", domain.RoleOwner, domain.RoleEditor)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = perms.HasRole(ctx, "u1", "ev-1", domain.RoleOwner)
	require.NoError(t, err)
	assert.False(t, ok, "editor grant does not satisfy owner-only set")

	require.NoError(t, repo.Remove(ctx, "ev-1", "u1"))
	ok, err = perms.HasRole(ctx, "u1", "ev-1", domain.RoleOwner, domain.RoleEditor)
	require.NoError(t, err)
	assert.False(t, ok)
}
