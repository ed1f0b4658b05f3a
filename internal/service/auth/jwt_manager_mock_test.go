package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ jwtManager = &jwtManagerMock{}

type jwtManagerMock struct {
	GenerateTokenFunc func(userID uuid.UUID) (string, error)
	TTLFunc           func() time.Duration
	ValidateTokenFunc func(token string) (uuid.UUID, error)

	calls struct {
		GenerateToken []struct {
			UserID uuid.UUID
		}
		TTL []struct {
		}
		ValidateToken []struct {
			Token string
		}
	}
	lockGenerateToken sync.RWMutex
	lockTTL           sync.RWMutex
	lockValidateToken sync.RWMutex
}

func (mock *jwtManagerMock) GenerateToken(userID uuid.UUID) (string, error) {
	if mock.GenerateTokenFunc == nil {
		panic("jwtManagerMock.GenerateTokenFunc: method is nil but jwtManager.GenerateToken was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
	}{UserID: userID}
	mock.lockGenerateToken.Lock()
	mock.calls.GenerateToken = append(mock.calls.GenerateToken, callInfo)
	mock.lockGenerateToken.Unlock()
	return mock.GenerateTokenFunc(userID)
}

func (mock *jwtManagerMock) GenerateTokenCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockGenerateToken.RLock()
	calls := mock.calls.GenerateToken
	mock.lockGenerateToken.RUnlock()
	return calls
}

func (mock *jwtManagerMock) TTL() time.Duration {
	if mock.TTLFunc == nil {
		panic("jwtManagerMock.TTLFunc: method is nil but jwtManager.TTL was just called")
	}
	mock.lockTTL.Lock()
	mock.calls.TTL = append(mock.calls.TTL, struct{}{})
	mock.lockTTL.Unlock()
	return mock.TTLFunc()
}

func (mock *jwtManagerMock) TTLCalls() []struct{} {
	mock.lockTTL.RLock()
	calls := mock.calls.TTL
	mock.lockTTL.RUnlock()
	return calls
}

func (mock *jwtManagerMock) ValidateToken(token string) (uuid.UUID, error) {
	if mock.ValidateTokenFunc == nil {
		panic("jwtManagerMock.ValidateTokenFunc: method is nil but jwtManager.ValidateToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, callInfo)
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(token)
}

func (mock *jwtManagerMock) ValidateTokenCalls() []struct {
	Token string
} {
	mock.lockValidateToken.RLock()
	calls := mock.calls.ValidateToken
	mock.lockValidateToken.RUnlock()
	return calls
}
