package form

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/gforms"
	"github.com/heartmarshall/formcraft-backend/internal/service/structure"
)

var _ questionGenerator = &questionGeneratorMock{}

type questionGeneratorMock struct {
	ExpandFunc func(ctx context.Context, input structure.ExpandInput) ([]gforms.Request, error)

	calls struct {
		Expand []struct {
			Ctx   context.Context
			Input structure.ExpandInput
		}
	}
	lockExpand sync.RWMutex
}

func (mock *questionGeneratorMock) Expand(ctx context.Context, input structure.ExpandInput) ([]gforms.Request, error) {
	if mock.ExpandFunc == nil {
		panic("questionGeneratorMock.ExpandFunc: method is nil but questionGenerator.Expand was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input structure.ExpandInput
	}{Ctx: ctx, Input: input}
	mock.lockExpand.Lock()
	mock.calls.Expand = append(mock.calls.Expand, callInfo)
	mock.lockExpand.Unlock()
	return mock.ExpandFunc(ctx, input)
}

func (mock *questionGeneratorMock) ExpandCalls() []struct {
	Ctx   context.Context
	Input structure.ExpandInput
} {
	mock.lockExpand.RLock()
	calls := mock.calls.Expand
	mock.lockExpand.RUnlock()
	return calls
}
