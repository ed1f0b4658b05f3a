package llm

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var _ Client = &ClientMock{}

type ClientMock struct {
	GenerateFunc func(ctx context.Context, req domain.GenerationRequest) (string, error)
	NameFunc     func() string

	calls struct {
		Generate []struct {
			Ctx context.Context
			Req domain.GenerationRequest
		}
		Name []struct {
		}
	}
	lockGenerate sync.RWMutex
	lockName     sync.RWMutex
}

func (mock *ClientMock) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if mock.GenerateFunc == nil {
		panic("ClientMock.GenerateFunc: method is nil but Client.Generate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.GenerationRequest
	}{Ctx: ctx, Req: req}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *ClientMock) GenerateCalls() []struct {
	Ctx context.Context
	Req domain.GenerationRequest
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

func (mock *ClientMock) Name() string {
	if mock.NameFunc == nil {
		panic("ClientMock.NameFunc: method is nil but Client.Name was just called")
	}
	mock.lockName.Lock()
	mock.calls.Name = append(mock.calls.Name, struct{}{})
	mock.lockName.Unlock()
	return mock.NameFunc()
}

func (mock *ClientMock) NameCalls() []struct{} {
	mock.lockName.RLock()
	calls := mock.calls.Name
	mock.lockName.RUnlock()
	return calls
}
