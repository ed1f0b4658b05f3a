package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

var _ formRepo = &formRepoMock{}

type formRepoMock struct {
	DeactivateFunc                 func(ctx context.Context, id uuid.UUID) error
	DeletePendingFunc              func(ctx context.Context, id uuid.UUID) error
	ListActiveWithMaxResponsesFunc func(ctx context.Context) ([]domain.FormRecord, error)
	ListExpiredActiveFunc          func(ctx context.Context, now time.Time) ([]domain.FormRecord, error)
	ListStalePendingFunc           func(ctx context.Context, cutoff time.Time) ([]domain.FormRecord, error)
	UpdateResponseCountFunc        func(ctx context.Context, id uuid.UUID, count int) error

	calls struct {
		Deactivate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		DeletePending []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListActiveWithMaxResponses []struct {
			Ctx context.Context
		}
		ListExpiredActive []struct {
			Ctx context.Context
			Now time.Time
		}
		ListStalePending []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		UpdateResponseCount []struct {
			Ctx   context.Context
			Id    uuid.UUID
			Count int
		}
	}
	lockDeactivate                 sync.RWMutex
	lockDeletePending              sync.RWMutex
	lockListActiveWithMaxResponses sync.RWMutex
	lockListExpiredActive          sync.RWMutex
	lockListStalePending           sync.RWMutex
	lockUpdateResponseCount        sync.RWMutex
}

func (mock *formRepoMock) Deactivate(ctx context.Context, id uuid.UUID) error {
	if mock.DeactivateFunc == nil {
		panic("formRepoMock.DeactivateFunc: method is nil but formRepo.Deactivate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeactivate.Lock()
	mock.calls.Deactivate = append(mock.calls.Deactivate, callInfo)
	mock.lockDeactivate.Unlock()
	return mock.DeactivateFunc(ctx, id)
}

func (mock *formRepoMock) DeactivateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeactivate.RLock()
	calls := mock.calls.Deactivate
	mock.lockDeactivate.RUnlock()
	return calls
}

func (mock *formRepoMock) DeletePending(ctx context.Context, id uuid.UUID) error {
	if mock.DeletePendingFunc == nil {
		panic("formRepoMock.DeletePendingFunc: method is nil but formRepo.DeletePending was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockDeletePending.Lock()
	mock.calls.DeletePending = append(mock.calls.DeletePending, callInfo)
	mock.lockDeletePending.Unlock()
	return mock.DeletePendingFunc(ctx, id)
}

func (mock *formRepoMock) DeletePendingCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeletePending.RLock()
	calls := mock.calls.DeletePending
	mock.lockDeletePending.RUnlock()
	return calls
}

func (mock *formRepoMock) ListActiveWithMaxResponses(ctx context.Context) ([]domain.FormRecord, error) {
	if mock.ListActiveWithMaxResponsesFunc == nil {
		panic("formRepoMock.ListActiveWithMaxResponsesFunc: method is nil but formRepo.ListActiveWithMaxResponses was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListActiveWithMaxResponses.Lock()
	mock.calls.ListActiveWithMaxResponses = append(mock.calls.ListActiveWithMaxResponses, callInfo)
	mock.lockListActiveWithMaxResponses.Unlock()
	return mock.ListActiveWithMaxResponsesFunc(ctx)
}

func (mock *formRepoMock) ListActiveWithMaxResponsesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListActiveWithMaxResponses.RLock()
	calls := mock.calls.ListActiveWithMaxResponses
	mock.lockListActiveWithMaxResponses.RUnlock()
	return calls
}

func (mock *formRepoMock) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.FormRecord, error) {
	if mock.ListExpiredActiveFunc == nil {
		panic("formRepoMock.ListExpiredActiveFunc: method is nil but formRepo.ListExpiredActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockListExpiredActive.Lock()
	mock.calls.ListExpiredActive = append(mock.calls.ListExpiredActive, callInfo)
	mock.lockListExpiredActive.Unlock()
	return mock.ListExpiredActiveFunc(ctx, now)
}

func (mock *formRepoMock) ListExpiredActiveCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockListExpiredActive.RLock()
	calls := mock.calls.ListExpiredActive
	mock.lockListExpiredActive.RUnlock()
	return calls
}

func (mock *formRepoMock) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.FormRecord, error) {
	if mock.ListStalePendingFunc == nil {
		panic("formRepoMock.ListStalePendingFunc: method is nil but formRepo.ListStalePending was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockListStalePending.Lock()
	mock.calls.ListStalePending = append(mock.calls.ListStalePending, callInfo)
	mock.lockListStalePending.Unlock()
	return mock.ListStalePendingFunc(ctx, cutoff)
}

func (mock *formRepoMock) ListStalePendingCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockListStalePending.RLock()
	calls := mock.calls.ListStalePending
	mock.lockListStalePending.RUnlock()
	return calls
}

func (mock *formRepoMock) UpdateResponseCount(ctx context.Context, id uuid.UUID, count int) error {
	if mock.UpdateResponseCountFunc == nil {
		panic("formRepoMock.UpdateResponseCountFunc: method is nil but formRepo.UpdateResponseCount was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		Count int
	}{Ctx: ctx, Id: id, Count: count}
	mock.lockUpdateResponseCount.Lock()
	mock.calls.UpdateResponseCount = append(mock.calls.UpdateResponseCount, callInfo)
	mock.lockUpdateResponseCount.Unlock()
	return mock.UpdateResponseCountFunc(ctx, id, count)
}

func (mock *formRepoMock) UpdateResponseCountCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	Count int
} {
	mock.lockUpdateResponseCount.RLock()
	calls := mock.calls.UpdateResponseCount
	mock.lockUpdateResponseCount.RUnlock()
	return calls
}
