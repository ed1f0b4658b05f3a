package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/service/auth"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	AuthURLFunc func(state string) string
	LoginFunc   func(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	ProfileFunc func(ctx context.Context) (*domain.User, error)

	calls struct {
		AuthURL []struct {
			State string
		}
		Login []struct {
			Ctx   context.Context
			Input auth.LoginInput
		}
		Profile []struct {
			Ctx context.Context
		}
	}
	lockAuthURL sync.RWMutex
	lockLogin   sync.RWMutex
	lockProfile sync.RWMutex
}

func (mock *authServiceMock) AuthURL(state string) string {
	if mock.AuthURLFunc == nil {
		panic("authServiceMock.AuthURLFunc: method is nil but authService.AuthURL was just called")
	}
	callInfo := struct {
		State string
	}{State: state}
	mock.lockAuthURL.Lock()
	mock.calls.AuthURL = append(mock.calls.AuthURL, callInfo)
	mock.lockAuthURL.Unlock()
	return mock.AuthURLFunc(state)
}

func (mock *authServiceMock) AuthURLCalls() []struct {
	State string
} {
	mock.lockAuthURL.RLock()
	calls := mock.calls.AuthURL
	mock.lockAuthURL.RUnlock()
	return calls
}

func (mock *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.LoginInput
	}{Ctx: ctx, Input: input}
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, callInfo)
	mock.lockLogin.Unlock()
	return mock.LoginFunc(ctx, input)
}

func (mock *authServiceMock) LoginCalls() []struct {
	Ctx   context.Context
	Input auth.LoginInput
} {
	mock.lockLogin.RLock()
	calls := mock.calls.Login
	mock.lockLogin.RUnlock()
	return calls
}

func (mock *authServiceMock) Profile(ctx context.Context) (*domain.User, error) {
	if mock.ProfileFunc == nil {
		panic("authServiceMock.ProfileFunc: method is nil but authService.Profile was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockProfile.Lock()
	mock.calls.Profile = append(mock.calls.Profile, callInfo)
	mock.lockProfile.Unlock()
	return mock.ProfileFunc(ctx)
}

func (mock *authServiceMock) ProfileCalls() []struct {
	Ctx context.Context
} {
	mock.lockProfile.RLock()
	calls := mock.calls.Profile
	mock.lockProfile.RUnlock()
	return calls
}
