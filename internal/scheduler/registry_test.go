package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo é uma implementação em memória de widget.Repository para os testes
type memRepo struct {
	mu       sync.Mutex
	settings map[string]*widget.Settings
}

func newMemRepo() *memRepo {
	return &memRepo{settings: make(map[string]*widget.Settings)}
}

func (r *memRepo) Save(_ context.Context, s *widget.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.settings[s.WidgetID] = &copied
	return nil
}

func (r *memRepo) Find(_ context.Context, widgetID string) (*widget.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[widgetID]
	if !ok {
		return nil, errors.New("configuração de widget não encontrada")
	}
	copied := *s
	return &copied, nil
}

func (r *memRepo) List(_ context.Context) ([]*widget.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*widget.Settings
	for _, s := range r.settings {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, widgetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.settings, widgetID)
	return nil
}

func (r *memRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = make(map[string]*widget.Settings)
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	r := NewRegistry(repo, logger.NewLogger())
	t.Cleanup(r.Close)
	return r, repo
}

func TestRegistry_RefreshWidget(t *testing.T) {
	r, _ := newTestRegistry(t)

	var calls int32
	r.Register(widget.PeakHours, func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return map[string]int{"peak": 14}, nil
	})

	require.NoError(t, r.RefreshWidget(widget.PeakHours))

	snap, err := r.Snapshot(widget.PeakHours)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"peak": 14}, snap.Data)
	assert.False(t, snap.RefreshedAt.IsZero())
	assert.Empty(t, snap.LastError)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRegistry_RefreshWidget_NotRegistered(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.RefreshWidget("nope")
	assert.ErrorIs(t, err, ErrWidgetNotRegistered)
}

func TestRegistry_PeriodicRefresh(t *testing.T) {
	r, _ := newTestRegistry(t)

	var calls int32
	r.Register(widget.Retention, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})

	require.NoError(t, r.apply(widget.Retention, 20*time.Millisecond))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRegistry_IntervalZeroCancelsTimer(t *testing.T) {
	r, _ := newTestRegistry(t)

	var calls int32
	r.Register(widget.Demographics, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})

	require.NoError(t, r.apply(widget.Demographics, 20*time.Millisecond))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 1
	}, 2*time.Second, 5*time.Millisecond)

	// Desligar a atualização automática e verificar que não há novas buscas
	require.NoError(t, r.SetWidgetRefresh(context.Background(), widget.Demographics, 0))
	after := atomic.LoadInt32(&calls)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls))
}

func TestRegistry_SetWidgetRefresh_Validation(t *testing.T) {
	r, _ := newTestRegistry(t)

	r.Register(widget.WeeklyUsers, func(context.Context) (interface{}, error) {
		return nil, nil
	})

	t.Run("intervalo fora da lista é rejeitado", func(t *testing.T) {
		err := r.SetWidgetRefresh(context.Background(), widget.WeeklyUsers, 45)
		assert.ErrorIs(t, err, widget.ErrInvalidInterval)
	})

	t.Run("widget desconhecido é rejeitado", func(t *testing.T) {
		err := r.SetWidgetRefresh(context.Background(), "mystery", 30)
		assert.ErrorIs(t, err, widget.ErrUnknownWidget)
	})
}

// failSaveRepo envolve o memRepo e força erro na gravação
type failSaveRepo struct {
	*memRepo
	saveErr error
}

func (r *failSaveRepo) Save(ctx context.Context, s *widget.Settings) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.memRepo.Save(ctx, s)
}

func TestRegistry_SetWidgetRefresh_SaveFailureKeepsTimerState(t *testing.T) {
	repo := &failSaveRepo{memRepo: newMemRepo(), saveErr: errors.New("banco indisponível")}
	r := NewRegistry(repo, logger.NewLogger())
	t.Cleanup(r.Close)

	r.Register(widget.PeakHours, func(context.Context) (interface{}, error) {
		return nil, nil
	})

	err := r.SetWidgetRefresh(context.Background(), widget.PeakHours, 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banco indisponível")

	// O timer não foi instalado e nada foi persistido
	snap, err := r.Snapshot(widget.PeakHours)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.IntervalSeconds)

	_, err = repo.Find(context.Background(), widget.PeakHours)
	assert.Error(t, err)
}

func TestRegistry_FailureKeepsLastData(t *testing.T) {
	r, _ := newTestRegistry(t)

	var fail atomic.Bool
	r.Register(widget.ChatSessions, func(context.Context) (interface{}, error) {
		if fail.Load() {
			return nil, errors.New("origem indisponível")
		}
		return "ok", nil
	})

	require.NoError(t, r.RefreshWidget(widget.ChatSessions))

	fail.Store(true)
	require.NoError(t, r.RefreshWidget(widget.ChatSessions))

	snap, err := r.Snapshot(widget.ChatSessions)
	require.NoError(t, err)
	assert.Equal(t, "ok", snap.Data, "o último resultado deve ser preservado")
	assert.Contains(t, snap.LastError, "origem indisponível")

	notifications := r.Notifications()
	require.Len(t, notifications, 1, "cada falha gera exatamente uma notificação")
	assert.Equal(t, widget.ChatSessions, notifications[0].WidgetID)
}

func TestRegistry_FailureDoesNotAffectOtherWidgets(t *testing.T) {
	r, _ := newTestRegistry(t)

	var okCalls int32
	r.Register(widget.PeakHours, func(context.Context) (interface{}, error) {
		return nil, errors.New("sempre falha")
	})
	r.Register(widget.Retention, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&okCalls, 1), nil
	})

	require.NoError(t, r.apply(widget.PeakHours, 20*time.Millisecond))
	require.NoError(t, r.apply(widget.Retention, 20*time.Millisecond))

	// O widget saudável continua atualizando apesar das falhas do vizinho
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&okCalls) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	snap, err := r.Snapshot(widget.Retention)
	require.NoError(t, err)
	assert.Empty(t, snap.LastError)
}

func TestRegistry_StaleResultDiscarded(t *testing.T) {
	r, _ := newTestRegistry(t)

	release := make(chan struct{})
	r.Register(widget.DailyEngagement, func(context.Context) (interface{}, error) {
		<-release
		return "stale", nil
	})

	// Iniciar uma busca lenta em segundo plano
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.RefreshWidget(widget.DailyEngagement)
	}()

	// Mudar o intervalo enquanto a busca está em voo invalida a geração
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, r.SetWidgetRefresh(context.Background(), widget.DailyEngagement, 0))

	close(release)
	<-done

	snap, err := r.Snapshot(widget.DailyEngagement)
	require.NoError(t, err)
	assert.Nil(t, snap.Data, "resposta atrasada de geração anterior deve ser descartada")
}

func TestRegistry_SettingsPersistAcrossRestart(t *testing.T) {
	repo := newMemRepo()

	first := NewRegistry(repo, logger.NewLogger())
	first.Register(widget.WeeklyUsers, func(context.Context) (interface{}, error) { return nil, nil })
	require.NoError(t, first.SetWidgetRefresh(context.Background(), widget.WeeklyUsers, 300))
	first.Close()

	// Um novo registro sobre o mesmo repositório reencontra a configuração
	var calls int32
	second := NewRegistry(repo, logger.NewLogger())
	defer second.Close()
	second.Register(widget.WeeklyUsers, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})
	require.NoError(t, second.Start(context.Background()))

	snap, err := second.Snapshot(widget.WeeklyUsers)
	require.NoError(t, err)
	assert.Equal(t, 300, snap.IntervalSeconds)
}

func TestRegistry_StartRemovesOrphanSettings(t *testing.T) {
	repo := newMemRepo()
	repo.settings["widget-aposentado"] = &widget.Settings{WidgetID: "widget-aposentado", IntervalSeconds: 60}

	r := NewRegistry(repo, logger.NewLogger())
	t.Cleanup(r.Close)
	r.Register(widget.WeeklyUsers, func(context.Context) (interface{}, error) { return nil, nil })

	require.NoError(t, r.Start(context.Background()))

	// A configuração sem widget correspondente foi descartada do repositório
	_, err := repo.Find(context.Background(), "widget-aposentado")
	assert.Error(t, err)
}

func TestRegistry_ClearAllStopsTimers(t *testing.T) {
	r, repo := newTestRegistry(t)

	var calls int32
	r.Register(widget.PeakHours, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})
	r.Register(widget.Retention, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})

	require.NoError(t, r.apply(widget.PeakHours, 20*time.Millisecond))
	require.NoError(t, r.apply(widget.Retention, 20*time.Millisecond))
	require.NoError(t, r.SetWidgetRefresh(context.Background(), widget.PeakHours, 30))

	require.NoError(t, r.ClearAll(context.Background()))

	settings, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings, "as configurações persistidas devem ser removidas")

	after := atomic.LoadInt32(&calls)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls), "nenhuma busca deve ocorrer após ClearAll")
}

func TestRegistry_CloseStopsEverything(t *testing.T) {
	repo := newMemRepo()
	r := NewRegistry(repo, logger.NewLogger())

	var calls int32
	r.Register(widget.Demographics, func(context.Context) (interface{}, error) {
		return atomic.AddInt32(&calls, 1), nil
	})
	require.NoError(t, r.apply(widget.Demographics, 20*time.Millisecond))

	r.Close()

	after := atomic.LoadInt32(&calls)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&calls), "nenhuma busca deve ocorrer após Close")

	assert.ErrorIs(t, r.RefreshWidget(widget.Demographics), ErrRegistryClosed)
}
