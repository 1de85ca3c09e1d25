package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"stayhub/internal/config"
	handlers "stayhub/internal/handler"
)

func createTestHandler(authService *MockAuthService, userService *MockUserService, roomService *MockRoomService) *handlers.Handlers {
	cfg := &config.Config{
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
		ResetLinkBase: "https://stayhub.local",
	}

	return &handlers.Handlers{
		AuthService: authService,
		UserService: userService,
		RoomService: roomService,
		Cfg:         cfg,
		Validate:    validator.New(),
	}
}

// assertJSONError checks the status code and the error envelope.
func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}
