package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
)

var _ structureService = &structureServiceMock{}

type structureServiceMock struct {
	GenerateFunc func(ctx context.Context, input structure.GenerateInput) ([]gforms.Request, error)

	calls struct {
		Generate []struct {
			Ctx   context.Context
			Input structure.GenerateInput
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *structureServiceMock) Generate(ctx context.Context, input structure.GenerateInput) ([]gforms.Request, error) {
	if mock.GenerateFunc == nil {
		panic("structureServiceMock.GenerateFunc: method is nil but structureService.Generate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input structure.GenerateInput
	}{Ctx: ctx, Input: input}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, input)
}

func (mock *structureServiceMock) GenerateCalls() []struct {
	Ctx   context.Context
	Input structure.GenerateInput
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
