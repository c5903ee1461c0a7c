package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/globalcounseling/counseling-api/internal/types"
)

func TestStruct_AppointmentRequest(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := &types.CreateAppointmentRequest{
			TherapistID: "0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11",
			Date:        "2025-12-25",
			Time:        "14:00",
		}
		assert.Nil(t, Struct(req))
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		req := &types.CreateAppointmentRequest{}
		errs := Struct(req)
		assert.Contains(t, errs, "therapistId")
		assert.Contains(t, errs, "date")
		assert.Contains(t, errs, "time")
	})

	t.Run("BadTimeFormat", func(t *testing.T) {
		req := &types.CreateAppointmentRequest{
			TherapistID: "0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11",
			Date:        "2025-12-25",
			Time:        "25:99",
		}
		errs := Struct(req)
		assert.Contains(t, errs, "time")
	})

	t.Run("BadStatus", func(t *testing.T) {
		status := "rescheduled"
		req := &types.CreateAppointmentRequest{
			TherapistID: "0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11",
			Date:        "2025-12-25",
			Time:        "14:00",
			Status:      &status,
		}
		errs := Struct(req)
		assert.Contains(t, errs, "status")
	})
}

func TestStruct_WellnessRequest(t *testing.T) {
	t.Run("StressLevelOutOfRange", func(t *testing.T) {
		req := &types.CreateWellnessEntryRequest{Mood: "anxious", StressLevel: 11}
		errs := Struct(req)
		assert.Contains(t, errs, "stressLevel")
	})

	t.Run("Valid", func(t *testing.T) {
		req := &types.CreateWellnessEntryRequest{Mood: "calm", StressLevel: 3}
		assert.Nil(t, Struct(req))
	})
}

func TestStruct_UserRequest(t *testing.T) {
	t.Run("BadEmail", func(t *testing.T) {
		req := &types.CreateUserRequest{Name: "Jane", Email: "not-an-email"}
		errs := Struct(req)
		assert.Contains(t, errs, "email")
	})
}
