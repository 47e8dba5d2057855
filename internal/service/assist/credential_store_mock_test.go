package assist

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"sync"
)

var _ credentialStore = &credentialStoreMock{}

type credentialStoreMock struct {
	GetCredentialFunc func(ctx context.Context, userID uuid.UUID) (domain.UserCredential, error)

	calls struct {
		GetCredential []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockGetCredential sync.RWMutex
}

func (mock *credentialStoreMock) GetCredential(ctx context.Context, userID uuid.UUID) (domain.UserCredential, error) {
	if mock.GetCredentialFunc == nil {
		panic("credentialStoreMock.GetCredentialFunc: method is nil but credentialStore.GetCredential was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetCredential.Lock()
	mock.calls.GetCredential = append(mock.calls.GetCredential, callInfo)
	mock.lockGetCredential.Unlock()
	return mock.GetCredentialFunc(ctx, userID)
}

func (mock *credentialStoreMock) GetCredentialCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetCredential.RLock()
	calls := mock.calls.GetCredential
	mock.lockGetCredential.RUnlock()
	return calls
}
