package assist

import (
	"context"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"sync"
)

var _ aiClient = &aiClientMock{}

type aiClientMock struct {
	GenerateFunc func(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error)

	calls struct {
		Generate []struct {
			Ctx         context.Context
			Prompt      string
			Temperature float64
			Cred        domain.UserCredential
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *aiClientMock) Generate(ctx context.Context, prompt string, temperature float64, cred domain.UserCredential) (string, error) {
	if mock.GenerateFunc == nil {
		panic("aiClientMock.GenerateFunc: method is nil but aiClient.Generate was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Prompt      string
		Temperature float64
		Cred        domain.UserCredential
	}{Ctx: ctx, Prompt: prompt, Temperature: temperature, Cred: cred}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, prompt, temperature, cred)
}

func (mock *aiClientMock) GenerateCalls() []struct {
	Ctx         context.Context
	Prompt      string
	Temperature float64
	Cred        domain.UserCredential
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
