package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
	"github.com/heartmarshall/formcraft-backend/internal/service/form"
)

var _ formService = &formServiceMock{}

type formServiceMock struct {
	BulkDeleteFormsFunc func(ctx context.Context, input form.BulkDeleteInput) (int, error)
	CreateFormFunc      func(ctx context.Context, input form.CreateInput) (*domain.FormRecord, error)
	DeleteFormFunc      func(ctx context.Context, input form.DeleteInput) error
	DuplicateFormFunc   func(ctx context.Context, input form.DuplicateInput) (*domain.FormRecord, error)
	ExpandFormFunc      func(ctx context.Context, input form.ExpandInput) (*form.ExpandResult, error)
	ListFormsFunc       func(ctx context.Context) ([]form.FormView, error)

	calls struct {
		BulkDeleteForms []struct {
			Ctx   context.Context
			Input form.BulkDeleteInput
		}
		CreateForm []struct {
			Ctx   context.Context
			Input form.CreateInput
		}
		DeleteForm []struct {
			Ctx   context.Context
			Input form.DeleteInput
		}
		DuplicateForm []struct {
			Ctx   context.Context
			Input form.DuplicateInput
		}
		ExpandForm []struct {
			Ctx   context.Context
			Input form.ExpandInput
		}
		ListForms []struct {
			Ctx context.Context
		}
	}
	lockBulkDeleteForms sync.RWMutex
	lockCreateForm      sync.RWMutex
	lockDeleteForm      sync.RWMutex
	lockDuplicateForm   sync.RWMutex
	lockExpandForm      sync.RWMutex
	lockListForms       sync.RWMutex
}

func (mock *formServiceMock) BulkDeleteForms(ctx context.Context, input form.BulkDeleteInput) (int, error) {
	if mock.BulkDeleteFormsFunc == nil {
		panic("formServiceMock.BulkDeleteFormsFunc: method is nil but formService.BulkDeleteForms was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input form.BulkDeleteInput
	}{Ctx: ctx, Input: input}
	mock.lockBulkDeleteForms.Lock()
	mock.calls.BulkDeleteForms = append(mock.calls.BulkDeleteForms, callInfo)
	mock.lockBulkDeleteForms.Unlock()
	return mock.BulkDeleteFormsFunc(ctx, input)
}

func (mock *formServiceMock) BulkDeleteFormsCalls() []struct {
	Ctx   context.Context
	Input form.BulkDeleteInput
} {
	mock.lockBulkDeleteForms.RLock()
	calls := mock.calls.BulkDeleteForms
	mock.lockBulkDeleteForms.RUnlock()
	return calls
}

func (mock *formServiceMock) CreateForm(ctx context.Context, input form.CreateInput) (*domain.FormRecord, error) {
	if mock.CreateFormFunc == nil {
		panic("formServiceMock.CreateFormFunc: method is nil but formService.CreateForm was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input form.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateForm.Lock()
	mock.calls.CreateForm = append(mock.calls.CreateForm, callInfo)
	mock.lockCreateForm.Unlock()
	return mock.CreateFormFunc(ctx, input)
}

func (mock *formServiceMock) CreateFormCalls() []struct {
	Ctx   context.Context
	Input form.CreateInput
} {
	mock.lockCreateForm.RLock()
	calls := mock.calls.CreateForm
	mock.lockCreateForm.RUnlock()
	return calls
}

func (mock *formServiceMock) DeleteForm(ctx context.Context, input form.DeleteInput) error {
	if mock.DeleteFormFunc == nil {
		panic("formServiceMock.DeleteFormFunc: method is nil but formService.DeleteForm was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input form.DeleteInput
	}{Ctx: ctx, Input: input}
	mock.lockDeleteForm.Lock()
	mock.calls.DeleteForm = append(mock.calls.DeleteForm, callInfo)
	mock.lockDeleteForm.Unlock()
	return mock.DeleteFormFunc(ctx, input)
}

func (mock *formServiceMock) DeleteFormCalls() []struct {
	Ctx   context.Context
	Input form.DeleteInput
} {
	mock.lockDeleteForm.RLock()
	calls := mock.calls.DeleteForm
	mock.lockDeleteForm.RUnlock()
	return calls
}

func (mock *formServiceMock) DuplicateForm(ctx context.Context, input form.DuplicateInput) (*domain.FormRecord, error) {
	if mock.DuplicateFormFunc == nil {
		panic("formServiceMock.DuplicateFormFunc: method is nil but formService.DuplicateForm was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input form.DuplicateInput
	}{Ctx: ctx, Input: input}
	mock.lockDuplicateForm.Lock()
	mock.calls.DuplicateForm = append(mock.calls.DuplicateForm, callInfo)
	mock.lockDuplicateForm.Unlock()
	return mock.DuplicateFormFunc(ctx, input)
}

func (mock *formServiceMock) DuplicateFormCalls() []struct {
	Ctx   context.Context
	Input form.DuplicateInput
} {
	mock.lockDuplicateForm.RLock()
	calls := mock.calls.DuplicateForm
	mock.lockDuplicateForm.RUnlock()
	return calls
}

func (mock *formServiceMock) ExpandForm(ctx context.Context, input form.ExpandInput) (*form.ExpandResult, error) {
	if mock.ExpandFormFunc == nil {
		panic("formServiceMock.ExpandFormFunc: method is nil but formService.ExpandForm was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input form.ExpandInput
	}{Ctx: ctx, Input: input}
	mock.lockExpandForm.Lock()
	mock.calls.ExpandForm = append(mock.calls.ExpandForm, callInfo)
	mock.lockExpandForm.Unlock()
	return mock.ExpandFormFunc(ctx, input)
}

func (mock *formServiceMock) ExpandFormCalls() []struct {
	Ctx   context.Context
	Input form.ExpandInput
} {
	mock.lockExpandForm.RLock()
	calls := mock.calls.ExpandForm
	mock.lockExpandForm.RUnlock()
	return calls
}

func (mock *formServiceMock) ListForms(ctx context.Context) ([]form.FormView, error) {
	if mock.ListFormsFunc == nil {
		panic("formServiceMock.ListFormsFunc: method is nil but formService.ListForms was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListForms.Lock()
	mock.calls.ListForms = append(mock.calls.ListForms, callInfo)
	mock.lockListForms.Unlock()
	return mock.ListFormsFunc(ctx)
}

func (mock *formServiceMock) ListFormsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListForms.RLock()
	calls := mock.calls.ListForms
	mock.lockListForms.RUnlock()
	return calls
}
