package form

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var _ credentialStore = &credentialStoreMock{}

type credentialStoreMock struct {
	LoadFunc func(ctx context.Context, userID uuid.UUID) (domain.Credential, error)
	SaveFunc func(ctx context.Context, cred domain.Credential) error

	calls struct {
		Load []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Save []struct {
			Ctx  context.Context
			Cred domain.Credential
		}
	}
	lockLoad sync.RWMutex
	lockSave sync.RWMutex
}

func (mock *credentialStoreMock) Load(ctx context.Context, userID uuid.UUID) (domain.Credential, error) {
	if mock.LoadFunc == nil {
		panic("credentialStoreMock.LoadFunc: method is nil but credentialStore.Load was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, userID)
}

func (mock *credentialStoreMock) LoadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *credentialStoreMock) Save(ctx context.Context, cred domain.Credential) error {
	if mock.SaveFunc == nil {
		panic("credentialStoreMock.SaveFunc: method is nil but credentialStore.Save was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Cred domain.Credential
	}{Ctx: ctx, Cred: cred}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, cred)
}

func (mock *credentialStoreMock) SaveCalls() []struct {
	Ctx  context.Context
	Cred domain.Credential
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
