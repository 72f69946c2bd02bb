package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "maria@example.com",
		Password:        "passw0rd",
		ConfirmPassword: "passw0rd",
		Name:            "Maria",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SignupRequest)
	}{
		{"missing email", func(r *SignupRequest) { r.Email = "" }},
		{"malformed email", func(r *SignupRequest) { r.Email = "not-an-email" }},
		{"password too short", func(r *SignupRequest) { r.Password = "ab1"; r.ConfirmPassword = "ab1" }},
		{"password without digit", func(r *SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }},
		{"password without letter", func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }},
		{"confirm mismatch", func(r *SignupRequest) { r.ConfirmPassword = "passw0rd!" }},
		{"name too short", func(r *SignupRequest) { r.Name = "M" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestAddEnrollmentRequestValidate(t *testing.T) {
	t.Run("profile target", func(t *testing.T) {
		req := AddEnrollmentRequest{ClassID: 10, ProfileID: uintPtr(5)}
		assert.NoError(t, req.Validate())
	})

	t.Run("athlete target", func(t *testing.T) {
		req := AddEnrollmentRequest{ClassID: 10, AthleteID: uintPtr(7)}
		assert.NoError(t, req.Validate())
	})

	t.Run("both targets rejected", func(t *testing.T) {
		req := AddEnrollmentRequest{ClassID: 10, ProfileID: uintPtr(5), AthleteID: uintPtr(7)}
		assert.ErrorIs(t, req.Validate(), errEnrollmentTarget)
	})

	t.Run("no target rejected", func(t *testing.T) {
		req := AddEnrollmentRequest{ClassID: 10}
		assert.ErrorIs(t, req.Validate(), errEnrollmentTarget)
	})
}

func TestAddScheduleRequestValidate(t *testing.T) {
	valid := AddScheduleRequest{Weekday: 2, StartTime: "18:00", EndTime: "19:00", Location: "Main hall"}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.StartTime = "25:00"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Weekday = 7
	assert.Error(t, bad.Validate())
}
