package rest

import (
	"github.com/google/uuid"
	"sync"
)

var _ actionTokens = &actionTokensMock{}

type actionTokensMock struct {
	GenerateActionTokenFunc func(userID uuid.UUID) (string, error)

	ValidateActionTokenFunc func(token string, userID uuid.UUID) error

	calls struct {
		GenerateActionToken []struct {
			UserID uuid.UUID
		}
		ValidateActionToken []struct {
			Token  string
			UserID uuid.UUID
		}
	}
	lockGenerateActionToken sync.RWMutex
	lockValidateActionToken sync.RWMutex
}

func (mock *actionTokensMock) GenerateActionToken(userID uuid.UUID) (string, error) {
	if mock.GenerateActionTokenFunc == nil {
		panic("actionTokensMock.GenerateActionTokenFunc: method is nil but actionTokens.GenerateActionToken was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
	}{UserID: userID}
	mock.lockGenerateActionToken.Lock()
	mock.calls.GenerateActionToken = append(mock.calls.GenerateActionToken, callInfo)
	mock.lockGenerateActionToken.Unlock()
	return mock.GenerateActionTokenFunc(userID)
}

func (mock *actionTokensMock) GenerateActionTokenCalls() []struct {
	UserID uuid.UUID
} {
	mock.lockGenerateActionToken.RLock()
	calls := mock.calls.GenerateActionToken
	mock.lockGenerateActionToken.RUnlock()
	return calls
}

func (mock *actionTokensMock) ValidateActionToken(token string, userID uuid.UUID) error {
	if mock.ValidateActionTokenFunc == nil {
		panic("actionTokensMock.ValidateActionTokenFunc: method is nil but actionTokens.ValidateActionToken was just called")
	}
	callInfo := struct {
		Token  string
		UserID uuid.UUID
	}{Token: token, UserID: userID}
	mock.lockValidateActionToken.Lock()
	mock.calls.ValidateActionToken = append(mock.calls.ValidateActionToken, callInfo)
	mock.lockValidateActionToken.Unlock()
	return mock.ValidateActionTokenFunc(token, userID)
}

func (mock *actionTokensMock) ValidateActionTokenCalls() []struct {
	Token  string
	UserID uuid.UUID
} {
	mock.lockValidateActionToken.RLock()
	calls := mock.calls.ValidateActionToken
	mock.lockValidateActionToken.RUnlock()
	return calls
}
