package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/models"
	"stayhub/internal/service"
)

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestGetUser_Success(t *testing.T) {
	mockUser := new(MockUserService)
	handler := createTestHandler(new(MockAuthService), mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	mockUser.On("Get", mock.Anything, userID).Return(&models.User{
		ID:    userID,
		Email: "test@example.com",
		Account: models.Account{
			Username: "tester",
			Name:     "Test User",
		},
	}, nil)

	req := withID(httptest.NewRequest(http.MethodGet, "/user/"+userID.Hex(), nil), userID.Hex())
	rr := httptest.NewRecorder()

	handler.GetUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, userID.Hex(), response["id"])

	// the public view never exposes the email
	_, leaked := response["email"]
	assert.False(t, leaked)

	account, ok := response["account"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "tester", account["username"])

	mockUser.AssertExpectations(t)
}

func TestGetUser_WrongID(t *testing.T) {
	mockUser := new(MockUserService)
	handler := createTestHandler(new(MockAuthService), mockUser, new(MockRoomService))

	req := withID(httptest.NewRequest(http.MethodGet, "/user/nope", nil), "nope")
	rr := httptest.NewRecorder()

	handler.GetUser(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Wrong id")
	mockUser.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetUser_NotFound(t *testing.T) {
	mockUser := new(MockUserService)
	handler := createTestHandler(new(MockAuthService), mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	mockUser.On("Get", mock.Anything, userID).Return(nil, service.NotFound("User not found"))

	req := withID(httptest.NewRequest(http.MethodGet, "/user/"+userID.Hex(), nil), userID.Hex())
	rr := httptest.NewRecorder()

	handler.GetUser(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, "User not found")
}

func TestGetUserRooms_Success(t *testing.T) {
	mockUser := new(MockUserService)
	handler := createTestHandler(new(MockAuthService), mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	rooms := []models.Room{
		{ID: primitive.NewObjectID(), Title: "Loft downtown", Price: 80},
		{ID: primitive.NewObjectID(), Title: "Seaside studio", Price: 120},
	}
	mockUser.On("RoomsOf", mock.Anything, userID).Return(rooms, nil)

	req := withID(httptest.NewRequest(http.MethodGet, "/user/rooms/"+userID.Hex(), nil), userID.Hex())
	rr := httptest.NewRecorder()

	handler.GetUserRooms(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "Loft downtown", response[0]["title"])
}

func TestGetUserRooms_Empty(t *testing.T) {
	mockUser := new(MockUserService)
	handler := createTestHandler(new(MockAuthService), mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	mockUser.On("RoomsOf", mock.Anything, userID).
		Return(nil, service.NotFound("This user has no room"))

	req := withID(httptest.NewRequest(http.MethodGet, "/user/rooms/"+userID.Hex(), nil), userID.Hex())
	rr := httptest.NewRecorder()

	handler.GetUserRooms(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, "This user has no room")
}

func TestUpdateUser_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	caller := &models.User{ID: userID, Token: "token-123"}

	mockAuth.On("UserByToken", mock.Anything, "token-123").Return(caller, nil)
	mockUser.On("Update", mock.Anything, caller, userID, service.UserPatch{Name: "New Name"}).
		Return(&models.User{
			ID:      userID,
			Email:   "test@example.com",
			Account: models.Account{Username: "tester", Name: "New Name"},
		}, nil)

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	req := httptest.NewRequest(http.MethodPut, "/user/"+userID.Hex(), bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer token-123")
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.UpdateUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", response["email"])

	mockAuth.AssertExpectations(t)
	mockUser.AssertExpectations(t)
}

func TestUpdateUser_MissingParameters(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest(http.MethodPut, "/user/"+userID.Hex(), bytes.NewBuffer(body))
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.UpdateUser(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Missing parameters")
	mockAuth.AssertNotCalled(t, "UserByToken", mock.Anything, mock.Anything)
	mockUser.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_Unauthorized(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	caller := &models.User{ID: primitive.NewObjectID(), Token: "token-123"}

	mockAuth.On("UserByToken", mock.Anything, "token-123").Return(caller, nil)
	mockUser.On("Update", mock.Anything, caller, userID, mock.Anything).
		Return(nil, service.Unauthorized("User unauthorized"))

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	req := httptest.NewRequest(http.MethodPut, "/user/"+userID.Hex(), bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer token-123")
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.UpdateUser(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "User unauthorized")
}

func TestUpdateUser_InvalidEmail(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	caller := &models.User{ID: userID, Token: "token-123"}
	mockAuth.On("UserByToken", mock.Anything, "token-123").Return(caller, nil)
	mockUser.On("Update", mock.Anything, caller, userID, service.UserPatch{Email: "broken@"}).
		Return(nil, service.BadRequest("Email: incorrect format"))

	body, _ := json.Marshal(map[string]string{"email": "broken@"})
	req := httptest.NewRequest(http.MethodPut, "/user/"+userID.Hex(), bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer token-123")
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.UpdateUser(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest, "Email: incorrect format")
}

func TestDeleteUserPicture_NotFound(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	caller := &models.User{ID: userID, Token: "token-123"}

	mockAuth.On("UserByToken", mock.Anything, "token-123").Return(caller, nil)
	mockUser.On("DeletePicture", mock.Anything, caller, userID).
		Return(nil, service.NotFound("Picture not found"))

	req := httptest.NewRequest(http.MethodDelete, "/user/picture/"+userID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer token-123")
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.DeleteUserPicture(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, "Picture not found")
}

func TestDeleteUser_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	caller := &models.User{ID: userID, Token: "token-123"}

	mockAuth.On("UserByToken", mock.Anything, "token-123").Return(caller, nil)
	mockUser.On("Delete", mock.Anything, caller, userID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/user/"+userID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer token-123")
	req = withID(req, userID.Hex())
	rr := httptest.NewRecorder()

	handler.DeleteUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User deleted", response["message"])

	mockUser.AssertExpectations(t)
}

func TestDeleteUser_MissingToken(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockUser := new(MockUserService)
	handler := createTestHandler(mockAuth, mockUser, new(MockRoomService))

	userID := primitive.NewObjectID()
	mockAuth.On("UserByToken", mock.Anything, "").
		Return(nil, service.Unauthorized("User unauthorized"))

	req := withID(httptest.NewRequest(http.MethodDelete, "/user/"+userID.Hex(), nil), userID.Hex())
	rr := httptest.NewRecorder()

	handler.DeleteUser(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "User unauthorized")
	mockUser.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
