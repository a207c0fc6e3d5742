package errors

import "fmt"

var (
	ErrRoomNotFound        = fmt.Errorf("chatroom does not exist")
	ErrRoomAlreadyExists   = fmt.Errorf("chatroom already exists")
	ErrUserNotFound        = fmt.Errorf("user not found")
	ErrUsernameTaken       = fmt.Errorf("username already taken")
	ErrDuplicateConnection = fmt.Errorf("connection already registered")
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrWorkerPanic         = fmt.Errorf("worker panic")
)
