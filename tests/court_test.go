package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courtHttp "github.com/bookacourt/backend/internal/court/http"
	"github.com/bookacourt/backend/internal/user"
)

// nextWeekday returns the next future date falling on the given weekday
// (0 = Monday .. 6 = Sunday).
func nextWeekday(target int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for (int(d.Weekday())+6)%7 != target {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestCourtManagementAndPricing(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@pricing.com", "pass1234", user.RoleCourtOwner)
	manager := createTestUser(t, "manager@pricing.com", "pass1234", user.RoleCourtManager)
	player := createTestUser(t, "player@pricing.com", "pass1234", user.RolePlayer)

	ownerToken := generateToken(owner.ID, owner.Email)
	managerToken := generateToken(manager.ID, manager.Email)
	playerToken := generateToken(player.ID, player.Email)

	crt := createTestCourt(t, ownerToken, "1000")

	t.Run("players cannot create courts", func(t *testing.T) {
		w := executeRequest("POST", "/v1/courts", courtHttp.CreateCourtBody{
			Name:           "Rogue Court",
			CourtType:      "Tennis",
			Address:        "2 Court Street",
			City:           "Taipei",
			BaseHourlyRate: decimal.RequireFromString("100"),
			OpeningTime:    "08:00",
			ClosingTime:    "20:00",
		}, playerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unrelated staff cannot edit the court", func(t *testing.T) {
		name := "Hijacked"
		w := executeRequest("PATCH", "/v1/courts/"+crt.ID, courtHttp.UpdateCourtBody{Name: &name}, managerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delegated manager can edit the court", func(t *testing.T) {
		w := executeRequest("POST", "/v1/courts/"+crt.ID+"/managers",
			courtHttp.ManagerBody{UserID: manager.ID}, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		name := "Center Court East"
		w = executeRequest("PATCH", "/v1/courts/"+crt.ID, courtHttp.UpdateCourtBody{Name: &name}, managerToken)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("quote uses base rate without rules", func(t *testing.T) {
		date := futureDate(7)
		w := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/quote?date=%s&start_time=10:00&end_time=12:00", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote courtHttp.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.True(t, quote.HourlyRate.Equal(decimal.RequireFromString("1000")))
		assert.True(t, quote.Amount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("weekday evening rule overrides base rate", func(t *testing.T) {
		w := executeRequest("POST", "/v1/courts/"+crt.ID+"/pricing-rules", courtHttp.PricingRuleBody{
			StartTime:  "18:00",
			EndTime:    "21:00",
			DaysOfWeek: []int{0, 1, 2, 3, 4},
			HourlyRate: decimal.RequireFromString("1500"),
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		tuesday := nextWeekday(1).Format(time.DateOnly)
		wq := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/quote?date=%s&start_time=18:00&end_time=19:00", crt.ID, tuesday), nil, "")
		require.Equal(t, http.StatusOK, wq.Code)

		var quote courtHttp.QuoteResponse
		require.NoError(t, json.Unmarshal(wq.Body.Bytes(), &quote))
		assert.True(t, quote.HourlyRate.Equal(decimal.RequireFromString("1500")), "got %s", quote.HourlyRate)

		// The weekend keeps the base rate.
		sunday := nextWeekday(6).Format(time.DateOnly)
		wq = executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/quote?date=%s&start_time=18:00&end_time=19:00", crt.ID, sunday), nil, "")
		require.Equal(t, http.StatusOK, wq.Code)
		require.NoError(t, json.Unmarshal(wq.Body.Bytes(), &quote))
		assert.True(t, quote.HourlyRate.Equal(decimal.RequireFromString("1000")))
	})

	t.Run("blocked slot occupies availability", func(t *testing.T) {
		date := futureDate(10)
		w := executeRequest("POST", "/v1/courts/"+crt.ID+"/blocked-slots", courtHttp.BlockSlotBody{
			Date:      date,
			StartTime: "08:00",
			EndTime:   "10:00",
			Reason:    "maintenance",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		wf := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=09:00&end_time=10:00", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, wf.Code)
		assert.Contains(t, wf.Body.String(), `"free":false`)
	})

	t.Run("default cancellation policy is served", func(t *testing.T) {
		w := executeRequest("GET", "/v1/courts/"+crt.ID+"/cancellation-policy", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var policy courtHttp.PolicyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &policy))
		assert.Equal(t, 24, policy.CancellationDeadlineHours)
		assert.Equal(t, 48, policy.FullRefundHours)
		assert.Equal(t, 50, policy.PartialRefundPercentage)
	})

	t.Run("owner configures a custom policy", func(t *testing.T) {
		w := executeRequest("PUT", "/v1/courts/"+crt.ID+"/cancellation-policy", courtHttp.PolicyBody{
			CancellationDeadlineHours: 12,
			FullRefundHours:           72,
			PartialRefundHours:        24,
			PartialRefundPercentage:   30,
			NoShowPenaltyPercentage:   100,
		}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		wg := executeRequest("GET", "/v1/courts/"+crt.ID+"/cancellation-policy", nil, "")
		require.Equal(t, http.StatusOK, wg.Code)

		var policy courtHttp.PolicyResponse
		require.NoError(t, json.Unmarshal(wg.Body.Bytes(), &policy))
		assert.Equal(t, 12, policy.CancellationDeadlineHours)
		assert.Equal(t, 30, policy.PartialRefundPercentage)
	})
}
