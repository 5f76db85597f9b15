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

	bookingHttp "github.com/bookacourt/backend/internal/booking/http"
	courtHttp "github.com/bookacourt/backend/internal/court/http"
	"github.com/bookacourt/backend/internal/user"
)

func createTestCourt(t *testing.T, token string, rate string) courtHttp.CourtResponse {
	payload := courtHttp.CreateCourtBody{
		Name:           "Center Court",
		CourtType:      "Tennis",
		Address:        "1 Court Street",
		City:           "Taipei",
		IsIndoor:       true,
		Capacity:       4,
		BaseHourlyRate: decimal.RequireFromString(rate),
		OpeningTime:    "06:00",
		ClosingTime:    "22:00",
	}
	w := executeRequest("POST", "/v1/courts", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp courtHttp.CourtResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(time.DateOnly)
}

func TestBookingLifecycle(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@court.com", "pass1234", user.RoleCourtOwner)
	player := createTestUser(t, "player@court.com", "pass1234", user.RolePlayer)
	rival := createTestUser(t, "rival@court.com", "pass1234", user.RolePlayer)

	ownerToken := generateToken(owner.ID, owner.Email)
	playerToken := generateToken(player.ID, player.Email)
	rivalToken := generateToken(rival.ID, rival.Email)

	crt := createTestCourt(t, ownerToken, "1000")
	date := futureDate(7)

	var booked bookingHttp.BookingResponse

	t.Run("reserve a free slot", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "10:00",
			EndTime:   "12:00",
		}, playerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))
		assert.Equal(t, "PENDING", booked.Status)
		assert.Equal(t, "BK", booked.Reference[:2])
		assert.True(t, booked.TotalAmount.Equal(decimal.RequireFromString("2000")))
		assert.True(t, booked.FinalAmount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("overlapping reservation is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "11:00",
			EndTime:   "13:00",
		}, rivalToken)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("back to back reservation succeeds", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "12:00",
			EndTime:   "13:00",
		}, rivalToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("interval outside operating hours is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "21:30",
			EndTime:   "22:30",
		}, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "14:00",
			EndTime:   "13:00",
		}, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("past date is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      time.Now().UTC().AddDate(0, 0, -1).Format(time.DateOnly),
			StartTime: "10:00",
			EndTime:   "11:00",
		}, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("availability reflects bookings", func(t *testing.T) {
		w := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=10:00&end_time=11:00", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var free bookingHttp.IsFreeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &free))
		assert.False(t, free.Free)

		w = executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=14:00&end_time=15:00", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &free))
		assert.True(t, free.Free)
	})

	t.Run("free slots omit booked hours", func(t *testing.T) {
		w := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/availability?date=%s", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Slots []bookingHttp.SlotResponse `json:"slots"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// Operating 06:00-22:00 is 16 hourly slots; 10-12 and 12-13 are taken.
		assert.Len(t, resp.Slots, 13)
		for _, s := range resp.Slots {
			assert.NotEqual(t, "10:00:00", s.StartTime)
			assert.NotEqual(t, "11:00:00", s.StartTime)
			assert.NotEqual(t, "12:00:00", s.StartTime)
		}
	})

	t.Run("stranger cannot read the booking", func(t *testing.T) {
		w := executeRequest("GET", "/v1/bookings/"+booked.ID, nil, rivalToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner reads any booking via reference", func(t *testing.T) {
		w := executeRequest("GET", "/v1/bookings/reference/"+booked.Reference, nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, booked.ID, resp.ID)
	})

	t.Run("confirm the booking", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/"+booked.ID+"/confirm", nil, playerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Equal(t, "COMPLETED", resp.PaymentStatus)
	})

	t.Run("double confirm is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/"+booked.ID+"/confirm", nil, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cancel releases the slot with a full refund", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/"+booked.ID+"/cancel",
			bookingHttp.CancelBody{Reason: "rain"}, playerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Equal(t, "REFUNDED", resp.PaymentStatus)
		require.NotNil(t, resp.RefundAmount)
		assert.True(t, resp.RefundAmount.Equal(resp.FinalAmount))

		// The freed slot can be booked again.
		w = executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:   crt.ID,
			Date:      date,
			StartTime: "10:00",
			EndTime:   "12:00",
		}, rivalToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/"+booked.ID+"/cancel",
			bookingHttp.CancelBody{}, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("players cannot mark completion", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings/"+booked.ID+"/complete", nil, playerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAvailabilityGuards(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@guards.com", "pass1234", user.RoleCourtOwner)
	ownerToken := generateToken(owner.ID, owner.Email)
	crt := createTestCourt(t, ownerToken, "1000")
	date := futureDate(4)

	t.Run("interval outside operating hours is not free", func(t *testing.T) {
		// Court operates 06:00-22:00; nothing is booked, yet 21:30-22:30
		// spills past closing and must not count as free.
		w := executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=21:30&end_time=22:30", crt.ID, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var free bookingHttp.IsFreeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &free))
		assert.False(t, free.Free)
	})

	t.Run("inactive court rejects availability queries", func(t *testing.T) {
		w := executeRequest("DELETE", "/v1/courts/"+crt.ID, nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=10:00&end_time=11:00", crt.ID, date), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		w = executeRequest("GET",
			fmt.Sprintf("/v1/courts/%s/availability?date=%s", crt.ID, date), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func TestCancelBeforePayment(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@unpaid.com", "pass1234", user.RoleCourtOwner)
	player := createTestUser(t, "player@unpaid.com", "pass1234", user.RolePlayer)
	ownerToken := generateToken(owner.ID, owner.Email)
	playerToken := generateToken(player.ID, player.Email)

	crt := createTestCourt(t, ownerToken, "1000")

	w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
		CourtID:   crt.ID,
		Date:      futureDate(6),
		StartTime: "10:00",
		EndTime:   "11:00",
	}, playerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booked bookingHttp.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))

	// Cancelling a PENDING booking records an explicit zero refund; nothing
	// was paid, so the payment status stays PENDING.
	w = executeRequest("POST", "/v1/bookings/"+booked.ID+"/cancel",
		bookingHttp.CancelBody{Reason: "changed plans"}, playerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp bookingHttp.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, "PENDING", resp.PaymentStatus)
	require.NotNil(t, resp.RefundAmount)
	assert.True(t, resp.RefundAmount.IsZero())
}

func TestBookingWithLoyaltyPoints(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@points.com", "pass1234", user.RoleCourtOwner)
	player := createTestUser(t, "player@points.com", "pass1234", user.RolePlayer)
	grantLoyaltyPoints(t, player.ID, 100)

	ownerToken := generateToken(owner.ID, owner.Email)
	playerToken := generateToken(player.ID, player.Email)

	crt := createTestCourt(t, ownerToken, "500")
	date := futureDate(5)

	t.Run("redeeming more points than owned is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:           crt.ID,
			Date:              date,
			StartTime:         "09:00",
			EndTime:           "10:00",
			LoyaltyPointsUsed: 500,
		}, playerToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("points discount the final amount", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
			CourtID:           crt.ID,
			Date:              date,
			StartTime:         "09:00",
			EndTime:           "10:00",
			LoyaltyPointsUsed: 100,
		}, playerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("500")))
		assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("10")))
		assert.True(t, resp.FinalAmount.Equal(decimal.RequireFromString("490")))

		// Points are deducted at confirmation, not reservation.
		wMe := executeRequest("GET", "/v1/users/me", nil, playerToken)
		require.Equal(t, http.StatusOK, wMe.Code)
		var me struct {
			LoyaltyPoints int `json:"loyalty_points"`
		}
		require.NoError(t, json.Unmarshal(wMe.Body.Bytes(), &me))
		assert.Equal(t, 100, me.LoyaltyPoints)

		wConfirm := executeRequest("POST", "/v1/bookings/"+resp.ID+"/confirm", nil, playerToken)
		require.Equal(t, http.StatusOK, wConfirm.Code, wConfirm.Body.String())

		wMe = executeRequest("GET", "/v1/users/me", nil, playerToken)
		require.NoError(t, json.Unmarshal(wMe.Body.Bytes(), &me))
		assert.Equal(t, 0, me.LoyaltyPoints)
	})
}
