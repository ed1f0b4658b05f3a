package form

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/gforms"
)

var _ Session = &SessionMock{}

type SessionMock struct {
	BatchUpdateFunc func(ctx context.Context, formID string, reqs []gforms.Request) error
	CreateFunc      func(ctx context.Context, title string) (*gforms.Form, error)
	GetFunc         func(ctx context.Context, formID string) (*gforms.Form, error)
	RotatedFunc     func() (domain.Credential, bool)

	calls struct {
		BatchUpdate []struct {
			Ctx    context.Context
			FormID string
			Reqs   []gforms.Request
		}
		Create []struct {
			Ctx   context.Context
			Title string
		}
		Get []struct {
			Ctx    context.Context
			FormID string
		}
		Rotated []struct {
		}
	}
	lockBatchUpdate sync.RWMutex
	lockCreate      sync.RWMutex
	lockGet         sync.RWMutex
	lockRotated     sync.RWMutex
}

func (mock *SessionMock) BatchUpdate(ctx context.Context, formID string, reqs []gforms.Request) error {
	if mock.BatchUpdateFunc == nil {
		panic("SessionMock.BatchUpdateFunc: method is nil but Session.BatchUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FormID string
		Reqs   []gforms.Request
	}{Ctx: ctx, FormID: formID, Reqs: reqs}
	mock.lockBatchUpdate.Lock()
	mock.calls.BatchUpdate = append(mock.calls.BatchUpdate, callInfo)
	mock.lockBatchUpdate.Unlock()
	return mock.BatchUpdateFunc(ctx, formID, reqs)
}

func (mock *SessionMock) BatchUpdateCalls() []struct {
	Ctx    context.Context
	FormID string
	Reqs   []gforms.Request
} {
	mock.lockBatchUpdate.RLock()
	calls := mock.calls.BatchUpdate
	mock.lockBatchUpdate.RUnlock()
	return calls
}

func (mock *SessionMock) Create(ctx context.Context, title string) (*gforms.Form, error) {
	if mock.CreateFunc == nil {
		panic("SessionMock.CreateFunc: method is nil but Session.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Title string
	}{Ctx: ctx, Title: title}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, title)
}

func (mock *SessionMock) CreateCalls() []struct {
	Ctx   context.Context
	Title string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *SessionMock) Get(ctx context.Context, formID string) (*gforms.Form, error) {
	if mock.GetFunc == nil {
		panic("SessionMock.GetFunc: method is nil but Session.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FormID string
	}{Ctx: ctx, FormID: formID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, formID)
}

func (mock *SessionMock) GetCalls() []struct {
	Ctx    context.Context
	FormID string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
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
