package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/penguins/internal/memory"
	mock_memory "github.com/at-ishikawa/penguins/internal/mocks/memory"
	mock_penguin "github.com/at-ishikawa/penguins/internal/mocks/penguin"
	mock_revalidate "github.com/at-ishikawa/penguins/internal/mocks/revalidate"
	"github.com/at-ishikawa/penguins/internal/patch"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
	"github.com/at-ishikawa/penguins/internal/store"
)

var (
	_ penguin.Repository     = (*mock_penguin.MockRepository)(nil)
	_ memory.Repository      = (*mock_memory.MockRepository)(nil)
	_ revalidate.Revalidator = (*mock_revalidate.MockRevalidator)(nil)
)

const (
	pinguID  = "11111111-1111-1111-1111-111111111111"
	memoryID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
)

var testNow = time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

type mocks struct {
	penguins    *mock_penguin.MockRepository
	memories    *mock_memory.MockRepository
	revalidator *mock_revalidate.MockRevalidator
}

func newTestService(t *testing.T) (*Service, mocks, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		penguins:    mock_penguin.NewMockRepository(ctrl),
		memories:    mock_memory.NewMockRepository(ctrl),
		revalidator: mock_revalidate.NewMockRevalidator(ctrl),
	}
	var logs bytes.Buffer
	s := NewService(m.penguins, m.memories, m.revalidator, zerolog.New(&logs), WithClock(func() time.Time {
		return testNow
	}))
	return s, m, &logs
}

func TestService_PenguinMutations(t *testing.T) {
	pingu := &penguin.Penguin{ID: pinguID, Name: "Pingu"}
	dbErr := errors.New("connection refused")

	tests := []struct {
		name    string
		setup   func(m mocks)
		run     func(s *Service) (any, error)
		want    any
		wantErr error
	}{
		{
			name: "create revalidates the grid and admin",
			setup: func(m mocks) {
				m.penguins.EXPECT().Create(gomock.Any(), penguin.Input{Name: "Pingu"}).Return(pingu, nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/penguins", "/admin").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return s.CreatePenguin(context.Background(), penguin.Input{Name: "Pingu"})
			},
			want: pingu,
		},
		{
			name: "failed create does not revalidate",
			setup: func(m mocks) {
				m.penguins.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, store.ErrValidation)
			},
			run: func(s *Service) (any, error) {
				return s.CreatePenguin(context.Background(), penguin.Input{})
			},
			wantErr: store.ErrValidation,
		},
		{
			name: "update revalidates the detail page too",
			setup: func(m mocks) {
				m.penguins.EXPECT().Update(gomock.Any(), pinguID, penguin.Patch{Name: patch.Set("Pingu")}).Return(pingu, nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/penguins/"+pinguID, "/penguins", "/admin").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return s.UpdatePenguin(context.Background(), pinguID, penguin.Patch{Name: patch.Set("Pingu")})
			},
			want: pingu,
		},
		{
			name: "update of a missing penguin does not revalidate",
			setup: func(m mocks) {
				m.penguins.EXPECT().Update(gomock.Any(), pinguID, gomock.Any()).Return(nil, nil)
			},
			run: func(s *Service) (any, error) {
				return s.UpdatePenguin(context.Background(), pinguID, penguin.Patch{})
			},
			want: (*penguin.Penguin)(nil),
		},
		{
			name: "delete revalidates the grid and admin",
			setup: func(m mocks) {
				m.penguins.EXPECT().Delete(gomock.Any(), pinguID).Return(nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/penguins", "/admin").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return nil, s.DeletePenguin(context.Background(), pinguID)
			},
		},
		{
			name: "failed delete is returned",
			setup: func(m mocks) {
				m.penguins.EXPECT().Delete(gomock.Any(), pinguID).Return(dbErr)
			},
			run: func(s *Service) (any, error) {
				return nil, s.DeletePenguin(context.Background(), pinguID)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, _ := newTestService(t)
			tt.setup(m)

			got, err := tt.run(s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_MemoryMutations(t *testing.T) {
	beach := &memory.Memory{ID: memoryID, Title: "Beach"}

	tests := []struct {
		name  string
		setup func(m mocks)
		run   func(s *Service) (any, error)
		want  any
	}{
		{
			name: "create",
			setup: func(m mocks) {
				m.memories.EXPECT().Create(gomock.Any(), memory.Input{Title: "Beach"}).Return(beach, nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/admin", "/memories").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return s.CreateMemory(context.Background(), memory.Input{Title: "Beach"})
			},
			want: beach,
		},
		{
			name: "update",
			setup: func(m mocks) {
				m.memories.EXPECT().Update(gomock.Any(), memoryID, gomock.Any()).Return(beach, nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/admin", "/memories").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return s.UpdateMemory(context.Background(), memoryID, memory.Patch{Title: patch.Set("Beach")})
			},
			want: beach,
		},
		{
			name: "update of a missing memory",
			setup: func(m mocks) {
				m.memories.EXPECT().Update(gomock.Any(), memoryID, gomock.Any()).Return(nil, nil)
			},
			run: func(s *Service) (any, error) {
				return s.UpdateMemory(context.Background(), memoryID, memory.Patch{})
			},
			want: (*memory.Memory)(nil),
		},
		{
			name: "delete",
			setup: func(m mocks) {
				m.memories.EXPECT().Delete(gomock.Any(), memoryID).Return(nil)
				m.revalidator.EXPECT().Revalidate(gomock.Any(), "/admin", "/memories").Return(nil)
			},
			run: func(s *Service) (any, error) {
				return nil, s.DeleteMemory(context.Background(), memoryID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, _ := newTestService(t)
			tt.setup(m)

			got, err := tt.run(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_RevalidationFailureIsLogged(t *testing.T) {
	s, m, logs := newTestService(t)
	m.memories.EXPECT().Delete(gomock.Any(), memoryID).Return(nil)
	m.revalidator.EXPECT().Revalidate(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("frontend down"))

	err := s.DeleteMemory(context.Background(), memoryID)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "frontend down")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestNewService_NilRevalidator(t *testing.T) {
	ctrl := gomock.NewController(t)
	penguins := mock_penguin.NewMockRepository(ctrl)
	penguins.EXPECT().Delete(gomock.Any(), pinguID).Return(nil)

	s := NewService(penguins, mock_memory.NewMockRepository(ctrl), nil, zerolog.Nop())
	assert.NoError(t, s.DeletePenguin(context.Background(), pinguID))
}
