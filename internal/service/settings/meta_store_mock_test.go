package settings

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ metaStore = &metaStoreMock{}

type metaStoreMock struct {
	DeleteFunc func(ctx context.Context, userID uuid.UUID, key string) error

	GetManyFunc func(ctx context.Context, userID uuid.UUID, keys ...string) (map[string]string, error)

	SetFunc func(ctx context.Context, userID uuid.UUID, key string, value string) error

	calls struct {
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Key    string
		}
		GetMany []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Keys   []string
		}
		Set []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Key    string
			Value  string
		}
	}
	lockDelete  sync.RWMutex
	lockGetMany sync.RWMutex
	lockSet     sync.RWMutex
}

func (mock *metaStoreMock) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	if mock.DeleteFunc == nil {
		panic("metaStoreMock.DeleteFunc: method is nil but metaStore.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Key    string
	}{Ctx: ctx, UserID: userID, Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, key)
}

func (mock *metaStoreMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Key    string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *metaStoreMock) GetMany(ctx context.Context, userID uuid.UUID, keys ...string) (map[string]string, error) {
	if mock.GetManyFunc == nil {
		panic("metaStoreMock.GetManyFunc: method is nil but metaStore.GetMany was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Keys   []string
	}{Ctx: ctx, UserID: userID, Keys: keys}
	mock.lockGetMany.Lock()
	mock.calls.GetMany = append(mock.calls.GetMany, callInfo)
	mock.lockGetMany.Unlock()
	return mock.GetManyFunc(ctx, userID, keys...)
}

func (mock *metaStoreMock) GetManyCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Keys   []string
} {
	mock.lockGetMany.RLock()
	calls := mock.calls.GetMany
	mock.lockGetMany.RUnlock()
	return calls
}

func (mock *metaStoreMock) Set(ctx context.Context, userID uuid.UUID, key string, value string) error {
	if mock.SetFunc == nil {
		panic("metaStoreMock.SetFunc: method is nil but metaStore.Set was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Key    string
		Value  string
	}{Ctx: ctx, UserID: userID, Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, userID, key, value)
}

func (mock *metaStoreMock) SetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Key    string
	Value  string
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
