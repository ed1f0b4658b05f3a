package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/service/intent"
)

var _ intentService = &intentServiceMock{}

type intentServiceMock struct {
	SuggestFunc func(ctx context.Context, input intent.SuggestInput) ([]domain.SectionSuggestion, error)

	calls struct {
		Suggest []struct {
			Ctx   context.Context
			Input intent.SuggestInput
		}
	}
	lockSuggest sync.RWMutex
}

func (mock *intentServiceMock) Suggest(ctx context.Context, input intent.SuggestInput) ([]domain.SectionSuggestion, error) {
	if mock.SuggestFunc == nil {
		panic("intentServiceMock.SuggestFunc: method is nil but intentService.Suggest was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input intent.SuggestInput
	}{Ctx: ctx, Input: input}
	mock.lockSuggest.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, callInfo)
	mock.lockSuggest.Unlock()
	return mock.SuggestFunc(ctx, input)
}

func (mock *intentServiceMock) SuggestCalls() []struct {
	Ctx   context.Context
	Input intent.SuggestInput
} {
	mock.lockSuggest.RLock()
	calls := mock.calls.Suggest
	mock.lockSuggest.RUnlock()
	return calls
}
