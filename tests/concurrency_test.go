package tests

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/bookacourt/backend/internal/booking/http"
	"github.com/bookacourt/backend/internal/user"
)

// Ten players race for the same slot; exactly one wins, the rest get 409.
func TestConcurrentReservations(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "owner@race.com", "pass1234", user.RoleCourtOwner)
	ownerToken := generateToken(owner.ID, owner.Email)
	crt := createTestCourt(t, ownerToken, "800")
	date := futureDate(3)

	const contenders = 10
	tokens := make([]string, contenders)
	for i := range tokens {
		u := createTestUser(t, fmt.Sprintf("racer%d@race.com", i), "pass1234", user.RolePlayer)
		tokens[i] = generateToken(u.ID, u.Email)
	}

	codes := make([]int, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := executeRequest("POST", "/v1/bookings", bookingHttp.ReserveBody{
				CourtID:   crt.ID,
				Date:      date,
				StartTime: "18:00",
				EndTime:   "19:00",
			}, tokens[i])
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status code %d", code)
		}
	}

	assert.Equal(t, 1, created, "exactly one reservation must win")
	assert.Equal(t, contenders-1, conflicted)

	// The winner's slot shows as occupied afterwards.
	w := executeRequest("GET",
		fmt.Sprintf("/v1/courts/%s/is-free?date=%s&start_time=18:00&end_time=19:00", crt.ID, date), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"free":false`)
}
