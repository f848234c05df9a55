package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyTestUser  CtxKey = "TestUser"
	KeyRequestID CtxKey = "RequestID"
)
