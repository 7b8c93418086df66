package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLicense_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name      string
		status    string
		expiresAt *time.Time
		want      string
	}{
		{"active without expiry", LicenseStatusActive, nil, LicenseStatusActive},
		{"active before expiry", LicenseStatusActive, &future, LicenseStatusActive},
		{"active past expiry reads expired", LicenseStatusActive, &past, LicenseStatusExpired},
		{"suspended past expiry reads expired", LicenseStatusSuspended, &past, LicenseStatusExpired},
		{"revoked past expiry reads expired", LicenseStatusRevoked, &past, LicenseStatusExpired},
		{"suspended before expiry", LicenseStatusSuspended, &future, LicenseStatusSuspended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &License{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, l.EffectiveStatus(now))
		})
	}
}

func TestAPIKey_Active(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.True(t, (&APIKey{}).Active(now))
	assert.True(t, (&APIKey{ExpiresAt: &future}).Active(now))
	assert.False(t, (&APIKey{ExpiresAt: &past}).Active(now))
	assert.False(t, (&APIKey{RevokedAt: &past}).Active(now))
	// Revocation wins even when the expiry is still in the future.
	assert.False(t, (&APIKey{RevokedAt: &past, ExpiresAt: &future}).Active(now))
}
