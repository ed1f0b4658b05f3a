package lifecycle

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var _ Session = &SessionMock{}

type SessionMock struct {
	CloseResponsesFunc func(ctx context.Context, formID string) error
	CountResponsesFunc func(ctx context.Context, formID string) (int, error)
	RotatedFunc        func() (domain.Credential, bool)

	calls struct {
		CloseResponses []struct {
			Ctx    context.Context
			FormID string
		}
		CountResponses []struct {
			Ctx    context.Context
			FormID string
		}
		Rotated []struct {
		}
	}
	lockCloseResponses sync.RWMutex
	lockCountResponses sync.RWMutex
	lockRotated        sync.RWMutex
}

func (mock *SessionMock) CloseResponses(ctx context.Context, formID string) error {
	if mock.CloseResponsesFunc == nil {
		panic("SessionMock.CloseResponsesFunc: method is nil but Session.CloseResponses was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FormID string
	}{Ctx: ctx, FormID: formID}
	mock.lockCloseResponses.Lock()
	mock.calls.CloseResponses = append(mock.calls.CloseResponses, callInfo)
	mock.lockCloseResponses.Unlock()
	return mock.CloseResponsesFunc(ctx, formID)
}

func (mock *SessionMock) CloseResponsesCalls() []struct {
	Ctx    context.Context
	FormID string
} {
	mock.lockCloseResponses.RLock()
	calls := mock.calls.CloseResponses
	mock.lockCloseResponses.RUnlock()
	return calls
}

func (mock *SessionMock) CountResponses(ctx context.Context, formID string) (int, error) {
	if mock.CountResponsesFunc == nil {
		panic("SessionMock.CountResponsesFunc: method is nil but Session.CountResponses was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FormID string
	}{Ctx: ctx, FormID: formID}
	mock.lockCountResponses.Lock()
	mock.calls.CountResponses = append(mock.calls.CountResponses, callInfo)
	mock.lockCountResponses.Unlock()
	return mock.CountResponsesFunc(ctx, formID)
}

func (mock *SessionMock) CountResponsesCalls() []struct {
	Ctx    context.Context
	FormID string
} {
	mock.lockCountResponses.RLock()
	calls := mock.calls.CountResponses
	mock.lockCountResponses.RUnlock()
	return calls
}

func (mock *SessionMock) Rotated() (domain.Credential, bool) {
	if mock.RotatedFunc == nil {
		panic("SessionMock.RotatedFunc: method is nil but Session.Rotated was just called")
	}
	mock.lockRotated.Lock()
	mock.calls.Rotated = append(mock.calls.Rotated, struct{}{})
	mock.lockRotated.Unlock()
	return mock.RotatedFunc()
}

func (mock *SessionMock) RotatedCalls() []struct{} {
	mock.lockRotated.RLock()
	calls := mock.calls.Rotated
	mock.lockRotated.RUnlock()
	return calls
}
