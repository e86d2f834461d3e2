package services

import (
	"context"
	"testing"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registrationReply = `{"registration-list": [{
	"event_intro": "Join us.",
	"form_title": "Register for A",
	"form_fields": [
		{"registration_name": "first_name", "description": "First name", "type": "text", "required": true},
		{"registration_name": "email", "description": "Email", "type": "email", "required": true}
	]
}]}`

func TestRegistrationService_GenerateRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	e := f.createEvent("u1")
	require.NoError(t, fakeVenueRepo{f.store}.ReplaceForEvent(ctx, e.ID, []*domain.VenueSuggestion{
		{Name: "Hall", Address: "1 Main St", TransportationScore: 3},
	}))
	venueID := firstKey(f.store.venues)
	f.gen.replies[domain.PromptRegistrationForm] = registrationReply

	reg, err := f.regs.GenerateRegistration(ctx, e.ID, "u1", venueID)
	require.NoError(t, err)
	assert.Equal(t, "Register for A", reg.FormTitle)
	assert.Len(t, reg.FormFields, 2)
	assert.Nil(t, reg.RegistrationURL)

	in := f.gen.inputs[0].(promptInput)
	require.NotNil(t, in.Venue)
	assert.Equal(t, "Hall", in.Venue.Name)

	// a second draft replaces the first
	_, err = f.regs.GenerateRegistration(ctx, e.ID, "u1", "")
	require.NoError(t, err)
	regs, err := f.regs.ListRegistrations(ctx, e.ID, "u1")
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegistrationService_GenerateRegistration_VenueOfOtherEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	e := f.createEvent("u1")
	other := f.createEvent("u1")
	require.NoError(t, fakeVenueRepo{f.store}.ReplaceForEvent(ctx, other.ID, []*domain.VenueSuggestion{
		{Name: "Elsewhere", TransportationScore: 3},
	}))
	f.gen.replies[domain.PromptRegistrationForm] = registrationReply

	_, err := f.regs.GenerateRegistration(ctx, e.ID, "u1", firstKey(f.store.venues))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.gen.calls)
}

func TestRegistrationService_PublishForm(t *testing.T) {
	ctx := context.Background()

	t.Run("records the responder url", func(t *testing.T) {
		f := newFixture()
		e := f.createEvent("u1")
		f.gen.replies[domain.PromptRegistrationForm] = registrationReply
		reg, err := f.regs.GenerateRegistration(ctx, e.ID, "u1", "")
		require.NoError(t, err)

		published, err := f.regs.PublishForm(ctx, e.ID, reg.ID, "u1")
		require.NoError(t, err)
		require.NotNil(t, published.RegistrationURL)
		assert.Equal(t, "https://forms.example/viewform", *published.RegistrationURL)
		assert.Equal(t, []string{"Register for A"}, f.forms.titles)
		assert.Equal(t, "https://forms.example/viewform", *f.store.regs[reg.ID].RegistrationURL)
	})

	t.Run("empty form fields are rejected", func(t *testing.T) {
		f := newFixture()
		e := f.createEvent("u1")
		require.NoError(t, fakeRegistrationRepo{f.store}.ReplaceForEvent(ctx, e.ID, &domain.Registration{FormTitle: "Empty"}))

		_, err := f.regs.PublishForm(ctx, e.ID, firstKey(f.store.regs), "u1")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "form_fields")
		assert.Empty(t, f.forms.titles)
	})

	t.Run("forms provider unavailable", func(t *testing.T) {
		f := newFixture()
		e := f.createEvent("u1")
		f.gen.replies[domain.PromptRegistrationForm] = registrationReply
		reg, err := f.regs.GenerateRegistration(ctx, e.ID, "u1", "")
		require.NoError(t, err)
		f.forms.err = domain.ErrIntegrationUnavailable

		_, err = f.regs.PublishForm(ctx, e.ID, reg.ID, "u1")
		assert.ErrorIs(t, err, domain.ErrIntegrationUnavailable)
		assert.Nil(t, f.store.regs[reg.ID].RegistrationURL)
	})
}

func TestRegistrationService_UpdateRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	e := f.createEvent("u1")
	require.NoError(t, fakeRegistrationRepo{f.store}.ReplaceForEvent(ctx, e.ID, &domain.Registration{FormTitle: "T"}))
	id := firstKey(f.store.regs)

	reg, err := f.regs.UpdateRegistration(ctx, e.ID, id, "u1", domain.RegistrationPatch{EventIntro: ptr("Welcome")})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", reg.EventIntro)

	_, err = f.regs.UpdateRegistration(ctx, e.ID, id, "u1", domain.RegistrationPatch{FormTitle: ptr("")})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
