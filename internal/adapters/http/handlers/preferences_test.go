package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-digest/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/mocks"
)

func putJSON(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func TestPreferencesHandler_Save(t *testing.T) {
	want := domain.Preferences{
		DeliveryTime: "08:00",
		Timezone:     "Europe/Berlin",
		Frequency:    domain.FrequencyCustom,
		CustomDays:   []int{1, 3, 5},
	}

	svc := mocks.NewMockPreferencesService(t)
	svc.EXPECT().
		SavePreferences(mock.Anything, "a@b.com", want).
		Return(&want, nil)

	c, w := putJSON(`{"email":"a@b.com","deliveryTime":"08:00","timezone":"Europe/Berlin","frequency":"custom","customDays":[1,3,5]}`)

	NewPreferencesHandler(svc).Save(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PreferencesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.MessagePreferencesSaved, resp.Message)
	assert.Equal(t, "custom", resp.Frequency)
	assert.Equal(t, []int{1, 3, 5}, resp.CustomDays)
}

func TestPreferencesHandler_Save_InvalidBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "missing everything",
			body:       `{}`,
			wantFields: []string{"email", "deliveryTime", "timezone", "frequency"},
		},
		{
			name:       "half hour and bad day",
			body:       `{"email":"a@b.com","deliveryTime":"08:30","timezone":"UTC","frequency":"custom","customDays":[7]}`,
			wantFields: []string{"deliveryTime", "customDays[0]"},
		},
		{
			name:       "unknown frequency",
			body:       `{"email":"a@b.com","deliveryTime":"08:00","timezone":"UTC","frequency":"hourly"}`,
			wantFields: []string{"frequency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := putJSON(tt.body)

			NewPreferencesHandler(mocks.NewMockPreferencesService(t)).Save(c)

			require.Len(t, c.Errors, 1)

			var ve *domain.ValidationError
			require.ErrorAs(t, c.Errors.Last().Err, &ve)

			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
		})
	}
}

func TestPreferencesHandler_Save_ServiceError(t *testing.T) {
	svc := mocks.NewMockPreferencesService(t)
	svc.EXPECT().
		SavePreferences(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewInvalidEmailError("nope"))

	c, _ := putJSON(`{"email":"nope","deliveryTime":"08:00","timezone":"UTC","frequency":"daily"}`)

	NewPreferencesHandler(svc).Save(c)

	require.Len(t, c.Errors, 1)
	assert.True(t, domain.IsInvalidEmail(c.Errors.Last().Err))
}
