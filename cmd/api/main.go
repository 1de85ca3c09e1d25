package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"stayhub/cmd/app"
	"stayhub/internal/config"
	handlers "stayhub/internal/handler"
	"stayhub/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, _, services := app.App(cfg)
	defer db.CloseDB(context.Background())

	handler := handlers.NewHandlers(services, db, cfg)

	router := newRouter(handler)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server started on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func newRouter(handler *handlers.Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/user/sign_up", handler.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/user/log_in", handler.LogIn).Methods(http.MethodPost)
	router.HandleFunc("/user/update_password", handler.UpdatePassword).Methods(http.MethodPut)
	router.HandleFunc("/user/recover_password", handler.RecoverPassword).Methods(http.MethodPost)
	router.HandleFunc("/user/rooms/{id}", handler.GetUserRooms).Methods(http.MethodGet)
	router.HandleFunc("/user/update/{id}", handler.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/user/upload_picture/{id}", handler.UploadUserPicture).Methods(http.MethodPut)
	router.HandleFunc("/user/delete_picture/{id}", handler.DeleteUserPicture).Methods(http.MethodDelete)
	router.HandleFunc("/user/delete/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	router.HandleFunc("/user/{id}", handler.GetUser).Methods(http.MethodGet)

	router.HandleFunc("/room/publish", handler.PublishRoom).Methods(http.MethodPost)
	router.HandleFunc("/rooms", handler.GetRooms).Methods(http.MethodGet)
	router.HandleFunc("/rooms/around", handler.GetRoomsAround).Methods(http.MethodGet)
	router.HandleFunc("/room/update/{id}", handler.UpdateRoom).Methods(http.MethodPut)
	router.HandleFunc("/room/upload_picture/{id}", handler.UploadRoomPicture).Methods(http.MethodPut)
	router.HandleFunc("/room/delete_picture/{id}", handler.DeleteRoomPicture).Methods(http.MethodDelete)
	router.HandleFunc("/room/delete/{id}", handler.DeleteRoom).Methods(http.MethodDelete)
	router.HandleFunc("/room/{id}", handler.GetRoom).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handler.NotFound)

	return router
}
