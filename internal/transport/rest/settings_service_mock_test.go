package rest

import (
	"context"
	"github.com/heartmarshall/writeassist-backend/internal/domain"
	"github.com/heartmarshall/writeassist-backend/internal/service/settings"
	"sync"
)

var _ settingsService = &settingsServiceMock{}

type settingsServiceMock struct {
	GetSettingsFunc func(ctx context.Context) (*domain.UserSettings, error)

	SaveSettingsFunc func(ctx context.Context, input settings.SaveSettingsInput) (*domain.UserSettings, error)

	calls struct {
		GetSettings []struct {
			Ctx context.Context
		}
		SaveSettings []struct {
			Ctx   context.Context
			Input settings.SaveSettingsInput
		}
	}
	lockGetSettings  sync.RWMutex
	lockSaveSettings sync.RWMutex
}

func (mock *settingsServiceMock) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	if mock.GetSettingsFunc == nil {
		panic("settingsServiceMock.GetSettingsFunc: method is nil but settingsService.GetSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGetSettings.Lock()
	mock.calls.GetSettings = append(mock.calls.GetSettings, callInfo)
	mock.lockGetSettings.Unlock()
	return mock.GetSettingsFunc(ctx)
}

func (mock *settingsServiceMock) GetSettingsCalls() []struct {
	Ctx context.Context
} {
	mock.lockGetSettings.RLock()
	calls := mock.calls.GetSettings
	mock.lockGetSettings.RUnlock()
	return calls
}

func (mock *settingsServiceMock) SaveSettings(ctx context.Context, input settings.SaveSettingsInput) (*domain.UserSettings, error) {
	if mock.SaveSettingsFunc == nil {
		panic("settingsServiceMock.SaveSettingsFunc: method is nil but settingsService.SaveSettings was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input settings.SaveSettingsInput
	}{Ctx: ctx, Input: input}
	mock.lockSaveSettings.Lock()
	mock.calls.SaveSettings = append(mock.calls.SaveSettings, callInfo)
	mock.lockSaveSettings.Unlock()
	return mock.SaveSettingsFunc(ctx, input)
}

func (mock *settingsServiceMock) SaveSettingsCalls() []struct {
	Ctx   context.Context
	Input settings.SaveSettingsInput
} {
	mock.lockSaveSettings.RLock()
	calls := mock.calls.SaveSettings
	mock.lockSaveSettings.RUnlock()
	return calls
}
