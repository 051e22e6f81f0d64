package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(ident *fakeIdentity, records *fakeRecords, email string, chartNames ...string) uuid.UUID {
	acct, _ := ident.CreateAccount(context.Background(), email, "secret", nil)
	records.profiles[acct.ID] = models.Profile{ID: acct.ID, Email: email}
	now := time.Now().UTC()
	for i, name := range chartNames {
		records.charts = append(records.charts, models.Chart{
			ID:        uuid.New(),
			UserID:    acct.ID,
			FullName:  name,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}
	return acct.ID
}

func TestDeleteUserIdentityCascadeSucceeds(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	id := seedUser(ident, records, "gone@example.com", "Chart One")
	svc := NewAdminService(ident, records)

	require.NoError(t, svc.DeleteUser(context.Background(), id))

	assert.Equal(t, 1, ident.deleteCalls)
	assert.Nil(t, ident.account(id))
	// A successful identity delete is trusted to cascade; no manual cleanup runs.
	assert.Equal(t, 0, records.deleteChartsCalls)
	assert.Equal(t, 0, records.deleteProfileCalls)
}

func TestDeleteUserManualFallback(t *testing.T) {
	ident := &fakeIdentity{deleteErrs: []error{errors.New("identity timeout")}}
	records := newFakeRecords()
	id := seedUser(ident, records, "gone@example.com", "Chart One", "Chart Two")
	svc := NewAdminService(ident, records)

	require.NoError(t, svc.DeleteUser(context.Background(), id))

	assert.Equal(t, 2, ident.deleteCalls, "one failed attempt plus one retry")
	assert.Nil(t, ident.account(id))
	assert.Empty(t, records.charts)
	assert.NotContains(t, records.profiles, id)
}

func TestDeleteUserRetryFailureSurfacesError(t *testing.T) {
	boom := errors.New("identity down")
	ident := &fakeIdentity{deleteErrs: []error{boom, boom}}
	records := newFakeRecords()
	id := seedUser(ident, records, "stuck@example.com", "Chart One")
	svc := NewAdminService(ident, records)

	err := svc.DeleteUser(context.Background(), id)
	assert.ErrorIs(t, err, ErrDeleteFailed)

	// The manual cascade has already run; partial deletion is left in place.
	assert.Empty(t, records.charts)
	assert.NotContains(t, records.profiles, id)
	assert.NotNil(t, ident.account(id))
}

func TestDeleteUserCascadeErrorsAreNonFatal(t *testing.T) {
	ident := &fakeIdentity{deleteErrs: []error{errors.New("first attempt fails")}}
	records := newFakeRecords()
	id := seedUser(ident, records, "gone@example.com", "Chart One")
	records.deleteChartsErr = errors.New("charts table locked")
	records.deleteProfileErr = errors.New("users table locked")
	svc := NewAdminService(ident, records)

	// Both manual steps fail but the retry succeeds, so the delete succeeds.
	require.NoError(t, svc.DeleteUser(context.Background(), id))
	assert.Nil(t, ident.account(id))
}

func TestExportUser(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	id := seedUser(ident, records, "export@example.com", "Chart One", "Chart Two")
	seedUser(ident, records, "other@example.com", "Unrelated Chart")
	svc := NewAdminService(ident, records)

	exp, err := svc.ExportUser(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "export@example.com", exp.Profile.Email)
	require.Len(t, exp.Charts, 2)
	assert.Equal(t, "Chart One", exp.Charts[0].FullName)
	assert.Equal(t, "Chart Two", exp.Charts[1].FullName)
}

func TestExportUserNotFound(t *testing.T) {
	svc := NewAdminService(&fakeIdentity{}, newFakeRecords())

	exp, err := svc.ExportUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, exp)
}

func TestExportUserWithoutCharts(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	id := seedUser(ident, records, "nocharts@example.com")
	svc := NewAdminService(ident, records)

	exp, err := svc.ExportUser(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, exp.Charts)
	assert.Empty(t, exp.Charts)
}

func TestExportUserUpstreamError(t *testing.T) {
	ident := &fakeIdentity{}
	records := newFakeRecords()
	seedUser(ident, records, "export@example.com")
	records.profilesErr = errors.New("database unreachable")
	svc := NewAdminService(ident, records)

	_, err := svc.ExportUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUpstream)
}
