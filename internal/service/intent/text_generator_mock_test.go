package intent

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var _ textGenerator = &textGeneratorMock{}

type textGeneratorMock struct {
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

func (mock *textGeneratorMock) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if mock.GenerateFunc == nil {
		panic("textGeneratorMock.GenerateFunc: method is nil but textGenerator.Generate was just called")
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

func (mock *textGeneratorMock) GenerateCalls() []struct {
	Ctx context.Context
	Req domain.GenerationRequest
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

func (mock *textGeneratorMock) Name() string {
	mock.lockName.Lock()
	mock.calls.Name = append(mock.calls.Name, struct{}{})
	mock.lockName.Unlock()
	if mock.NameFunc == nil {
		return "mock"
	}
	return mock.NameFunc()
}
