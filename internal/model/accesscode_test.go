package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestAccessCode_StatusAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		code AccessCode
		want CodeStatus
	}{
		{
			name: "active without limits",
			code: AccessCode{Code: "LAB-OPEN", IsActive: true},
			want: CodeActive,
		},
		{
			name: "exhausted at max uses",
			code: AccessCode{Code: "LAB-ABC123", MaxUses: intPtr(5), CurrentUses: 5, IsActive: true},
			want: CodeExhausted,
		},
		{
			name: "under max uses stays active",
			code: AccessCode{Code: "LAB-ABC123", MaxUses: intPtr(5), CurrentUses: 4, IsActive: true},
			want: CodeActive,
		},
		{
			name: "expired",
			code: AccessCode{Code: "LAB-OLD", ExpiresAt: timePtr(now.Add(-time.Hour)), IsActive: true},
			want: CodeExpired,
		},
		{
			name: "future expiry stays active",
			code: AccessCode{Code: "LAB-NEW", ExpiresAt: timePtr(now.Add(time.Hour)), IsActive: true},
			want: CodeActive,
		},
		{
			name: "inactive dominates expired",
			code: AccessCode{Code: "LAB-OFF", IsActive: false, ExpiresAt: timePtr(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))},
			want: CodeInactive,
		},
		{
			name: "expired dominates exhausted",
			code: AccessCode{Code: "LAB-BOTH", IsActive: true, MaxUses: intPtr(1), CurrentUses: 1, ExpiresAt: timePtr(now.Add(-time.Minute))},
			want: CodeExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.StatusAt(now))
		})
	}
}
