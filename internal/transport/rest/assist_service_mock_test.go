package rest

import (
	"context"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"sync"
)

var _ assistService = &assistServiceMock{}

type assistServiceMock struct {
	AssistFunc func(ctx context.Context, req domain.AssistRequest) (*domain.AssistResult, error)

	calls struct {
		Assist []struct {
			Ctx context.Context
			Req domain.AssistRequest
		}
	}
	lockAssist sync.RWMutex
}

func (mock *assistServiceMock) Assist(ctx context.Context, req domain.AssistRequest) (*domain.AssistResult, error) {
	if mock.AssistFunc == nil {
		panic("assistServiceMock.AssistFunc: method is nil but assistService.Assist was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.AssistRequest
	}{Ctx: ctx, Req: req}
	mock.lockAssist.Lock()
	mock.calls.Assist = append(mock.calls.Assist, callInfo)
	mock.lockAssist.Unlock()
	return mock.AssistFunc(ctx, req)
}

func (mock *assistServiceMock) AssistCalls() []struct {
	Ctx context.Context
	Req domain.AssistRequest
} {
	mock.lockAssist.RLock()
	calls := mock.calls.Assist
	mock.lockAssist.RUnlock()
	return calls
}
