package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm(name string) ChartForm {
	return ChartForm{
		FullName:         name,
		Relation:         "Self",
		SelectedServices: []string{"Astrology Consultation"},
		DateOfBirth:      "1995-01-01",
		TimeOfBirth:      "09:30",
		PlaceOfBirth:     "Mumbai, India",
	}
}

func signupInput(forms ...ChartForm) SignupInput {
	return SignupInput{
		Email:            "user@example.com",
		Password:         "Test@12345",
		FullName:         "Test User",
		Phone:            "+911234567890",
		ReferredBy:       "Friend",
		NumberOfCharts:   len(forms),
		SelectedServices: []string{"Astrology Consultation"},
		ChartData:        forms,
	}
}

func TestCompleteSignupPersistsAllThree(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	coordinator := NewSignupCoordinator(ident, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(filledForm("Person One")))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.AccountID)
	assert.Equal(t, 1, result.ChartsPersisted)

	acct := ident.account(result.AccountID)
	require.NotNil(t, acct)
	assert.Equal(t, "user@example.com", acct.Email)
	assert.Equal(t, "Test User", acct.Metadata["full_name"])
	assert.Equal(t, 1, acct.Metadata["number_of_charts"])

	profile, ok := records.profiles[result.AccountID]
	require.True(t, ok)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Test User", *profile.FullName)

	require.Len(t, records.charts, 1)
	assert.Equal(t, result.AccountID, records.charts[0].UserID)
}

func TestCompleteSignupDropsBlankForms(t *testing.T) {
	forms := []ChartForm{
		filledForm("Person One"),
		{}, // collapsed form, entirely blank
		filledForm("Person Two"),
	}

	records := newFakeRecords()
	coordinator := NewSignupCoordinator(&fakeIdentity{}, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(forms...))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChartsPersisted)
	assert.Len(t, records.charts, 2)
}

func TestCompleteSignupWhitespaceOnlyFormIsBlank(t *testing.T) {
	forms := []ChartForm{
		{FullName: "   ", Relation: "\t"},
	}

	records := newFakeRecords()
	coordinator := NewSignupCoordinator(&fakeIdentity{}, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(forms...))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChartsPersisted)
	assert.Empty(t, records.charts)
}

func TestCompleteSignupAccountFailureIsTerminal(t *testing.T) {
	ident := &fakeIdentity{createErr: errors.New("identity store down")}
	records := newFakeRecords()
	coordinator := NewSignupCoordinator(ident, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(filledForm("Person One")))
	assert.ErrorIs(t, err, ErrSignupFailed)
	assert.Nil(t, result)
	assert.Empty(t, records.profiles)
	assert.Empty(t, records.charts)
}

func TestCompleteSignupProfileFailureKeepsAccount(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	records.upsertErr = errors.New("users table unavailable")
	coordinator := NewSignupCoordinator(ident, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(filledForm("Person One")))
	assert.ErrorIs(t, err, ErrProfilePersistFailed)
	require.NotNil(t, result)
	assert.NotNil(t, ident.account(result.AccountID), "account must survive the profile failure")
	assert.Empty(t, records.charts, "chart insertion must not run after a profile failure")
}

func TestCompleteSignupChartFailureKeepsAccountAndProfile(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	records.insertErr = errors.New("charts table unavailable")
	coordinator := NewSignupCoordinator(ident, records)

	result, err := coordinator.CompleteSignup(context.Background(), signupInput(filledForm("Person One")))
	assert.ErrorIs(t, err, ErrChartsPersistFailed)
	require.NotNil(t, result)

	assert.NotNil(t, ident.account(result.AccountID))
	_, ok := records.profiles[result.AccountID]
	assert.True(t, ok, "profile must survive the chart failure")
}

func TestCompleteSignupNoChartsIsNotAnError(t *testing.T) {
	records := newFakeRecords()
	records.insertErr = errors.New("would fail if called")
	coordinator := NewSignupCoordinator(&fakeIdentity{}, records)

	in := signupInput()
	in.NumberOfCharts = 0
	result, err := coordinator.CompleteSignup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChartsPersisted)

	// Declared count bottoms out at 1 even with no forms.
	profile := records.profiles[result.AccountID]
	require.NotNil(t, profile.NumberOfCharts)
	assert.Equal(t, 1, *profile.NumberOfCharts)
}

func TestSignupThenAggregateEndToEnd(t *testing.T) {
	// numberOfCharts=2 with one filled and one blank form: the profile keeps the
	// declared count while only one chart row exists.
	ident := &fakeIdentity{}
	records := newFakeRecords()
	coordinator := NewSignupCoordinator(ident, records)

	in := signupInput(filledForm("Person One"), ChartForm{})
	in.NumberOfCharts = 2
	result, err := coordinator.CompleteSignup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ChartsPersisted)

	views, err := NewAggregator(ident, records).ListUnifiedUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Len(t, views[0].Charts, 1)
	require.NotNil(t, views[0].NumberOfCharts)
	assert.Equal(t, 2, *views[0].NumberOfCharts, "declared count wins over chart count")
	assert.Equal(t, []string{"Astrology Consultation"}, views[0].SelectedServices)
}

func TestChartRowsDefaulting(t *testing.T) {
	userID := uuid.New()
	rows := chartRows(userID, []ChartForm{{FullName: "Only Name"}})
	require.Len(t, rows, 1)

	assert.Equal(t, userID, rows[0].UserID)
	assert.Nil(t, rows[0].DateOfBirth)
	assert.Nil(t, rows[0].TimeOfBirth)
	assert.Equal(t, "", rows[0].PlaceOfBirth)
	assert.NotNil(t, rows[0].SelectedServices)
	assert.Empty(t, rows[0].SelectedServices)
}
