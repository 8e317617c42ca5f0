package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConfigUoW struct{ mock.Mock }

func (m *MockConfigUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConfigUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConfigUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConfigUoW) DispatchConfigRepository() ports.DispatchConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchConfigRepository)
}

type MockConfigUoWFactory struct{ mock.Mock }

func (m *MockConfigUoWFactory) Create() commands.ConfigUoW {
	args := m.Called()
	return args.Get(0).(commands.ConfigUoW)
}

func newConfigHandler(repo *MockEngineConfigRepository) commands.UpsertDispatchConfigCommandHandler {
	uow := new(MockConfigUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("DispatchConfigRepository").Return(repo)

	factory := new(MockConfigUoWFactory)
	factory.On("Create").Return(uow)

	return commands.NewUpsertDispatchConfigCommandHandler(factory)
}

func TestUpsertDispatchConfigCommandHandler_Handle_MergesPatch(t *testing.T) {
	ctx := t.Context()
	repo := new(MockEngineConfigRepository)
	repo.On("GetOrCreate", mock.Anything).Return(dispatch.DefaultConfig(), nil).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("dispatch.Config")).Return(nil).Once()

	handler := newConfigHandler(repo)
	cmd := commands.NewUpsertDispatchConfigCommand(dispatch.ConfigPatch{
		SearchRadius:  intPtr(2000),
		MaxIncrements: intPtr(5),
	})

	merged, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2000, merged.SearchRadius)
	assert.Equal(t, 5, merged.MaxIncrements)
	assert.Equal(t, 500, merged.IncrementalRadius)
	repo.AssertExpectations(t)
}

func TestUpsertDispatchConfigCommandHandler_Handle_RejectsOutOfBoundsPatch(t *testing.T) {
	ctx := t.Context()
	repo := new(MockEngineConfigRepository)
	repo.On("GetOrCreate", mock.Anything).Return(dispatch.DefaultConfig(), nil).Once()

	handler := newConfigHandler(repo)
	cmd := commands.NewUpsertDispatchConfigCommand(dispatch.ConfigPatch{
		SearchRadius: intPtr(0),
	})

	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpsertDispatchConfigCommandHandler_Handle_EmptyPatchReturnsCurrent(t *testing.T) {
	ctx := t.Context()
	repo := new(MockEngineConfigRepository)
	repo.On("GetOrCreate", mock.Anything).Return(dispatch.DefaultConfig(), nil).Once()
	repo.On("Save", mock.Anything, dispatch.DefaultConfig()).Return(nil).Once()

	handler := newConfigHandler(repo)
	cmd := commands.NewUpsertDispatchConfigCommand(dispatch.ConfigPatch{})

	current, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, dispatch.DefaultConfig(), current)
}

func intPtr(v int) *int { return &v }
