package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// Erros do registro de atualização
var (
	ErrWidgetNotRegistered = errors.New("widget não registrado no agendador")
	ErrRegistryClosed      = errors.New("agendador encerrado")
)

// Quantidade máxima de notificações retidas em memória
const maxNotifications = 50

// Tempo máximo de uma busca de dados de widget
const defaultFetchTimeout = 30 * time.Second

// FetchFunc busca os dados atualizados de um widget
type FetchFunc func(ctx context.Context) (interface{}, error)

// Snapshot é o último estado conhecido de um widget
type Snapshot struct {
	WidgetID        string      `json:"widget_id"`
	IntervalSeconds int         `json:"interval_seconds"`
	Data            interface{} `json:"data,omitempty"`
	RefreshedAt     time.Time   `json:"refreshed_at,omitempty"`
	LastError       string      `json:"last_error,omitempty"`
}

// Notification é um aviso transitório de falha de atualização de um widget
type Notification struct {
	WidgetID string    `json:"widget_id"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// entry guarda o estado de agendamento e o último resultado de um widget
type entry struct {
	fetch       FetchFunc
	interval    time.Duration
	gen         uint64 // geração atual; resultados de gerações anteriores são descartados
	stop        chan struct{}
	data        interface{}
	refreshedAt time.Time
	lastError   string
}

// Registry agenda a atualização periódica independente de cada widget do dashboard.
// O registro é o dono de todos os timers: é criado na inicialização da aplicação
// e encerrado com Close, que cancela todos os timers e aguarda as buscas em voo.
// Uma falha de busca preserva o último resultado e gera uma única notificação;
// os timers dos demais widgets não são afetados.
type Registry struct {
	repo         widget.Repository
	logger       logger.Logger
	fetchTimeout time.Duration

	mu            sync.Mutex
	entries       map[string]*entry
	notifications []Notification
	closed        bool

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRegistry cria uma nova instância de Registry
func NewRegistry(repo widget.Repository, logger logger.Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		repo:         repo,
		logger:       logger,
		fetchTimeout: defaultFetchTimeout,
		entries:      make(map[string]*entry),
		baseCtx:      ctx,
		cancel:       cancel,
	}
}

// Register associa um widget à sua função de busca de dados.
// Deve ser chamado para cada widget antes de Start.
func (r *Registry) Register(widgetID string, fetch FetchFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[widgetID] = &entry{fetch: fetch}
}

// Start carrega as configurações persistidas e reinstala os timers correspondentes
func (r *Registry) Start(ctx context.Context) error {
	settings, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("falha ao carregar configurações de widgets: %w", err)
	}

	for _, s := range settings {
		if err := r.apply(s.WidgetID, s.Interval()); err != nil {
			// Configuração órfã de um widget que não existe mais
			r.logger.Warn("configuração de widget órfã removida", "widget", s.WidgetID, "error", err)
			if derr := r.repo.Delete(ctx, s.WidgetID); derr != nil {
				r.logger.Warn("falha ao remover configuração órfã", "widget", s.WidgetID, "error", derr)
			}
		}
	}

	return nil
}

// SetWidgetRefresh define o intervalo de atualização automática de um widget.
// A escolha é persistida antes de mexer nos timers: se a gravação falhar, o
// timer atual permanece como estava e o estado em memória continua igual ao
// estado persistido.
func (r *Registry) SetWidgetRefresh(ctx context.Context, widgetID string, intervalSeconds int) error {
	s := &widget.Settings{
		WidgetID:        widgetID,
		IntervalSeconds: intervalSeconds,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	if _, ok := r.entries[widgetID]; !ok {
		r.mu.Unlock()
		return ErrWidgetNotRegistered
	}
	r.mu.Unlock()

	if err := r.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("falha ao persistir configuração do widget: %w", err)
	}

	return r.apply(widgetID, s.Interval())
}

// apply instala (ou remove) o timer de um widget sem persistir a configuração
func (r *Registry) apply(widgetID string, interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	e, ok := r.entries[widgetID]
	if !ok {
		return ErrWidgetNotRegistered
	}

	// Invalidar buscas em voo e cancelar o timer atual
	e.gen++
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	e.interval = interval

	if interval <= 0 {
		return nil
	}

	stop := make(chan struct{})
	e.stop = stop
	gen := e.gen

	r.wg.Add(1)
	go r.runTimer(widgetID, e.fetch, interval, gen, stop)

	return nil
}

// runTimer dispara a busca de um widget a cada intervalo até ser cancelado
func (r *Registry) runTimer(widgetID string, fetch FetchFunc, interval time.Duration, gen uint64, stop chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-r.baseCtx.Done():
			return
		case <-ticker.C:
			r.fetchAndStore(widgetID, fetch, gen)
		}
	}
}

// RefreshWidget executa uma busca imediata, fora do timer (atualização manual)
func (r *Registry) RefreshWidget(widgetID string) error {
	r.mu.Lock()
	e, ok := r.entries[widgetID]
	if !ok {
		r.mu.Unlock()
		return ErrWidgetNotRegistered
	}
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	fetch := e.fetch
	gen := e.gen
	r.mu.Unlock()

	r.fetchAndStore(widgetID, fetch, gen)
	return nil
}

// fetchAndStore executa a busca e grava o resultado se a geração ainda for a atual.
// Resultados de gerações anteriores (intervalo alterado, widget limpo ou registro
// encerrado durante a busca) são descartados para que uma resposta lenta nunca
// sobrescreva um estado mais novo.
func (r *Registry) fetchAndStore(widgetID string, fetch FetchFunc, gen uint64) {
	ctx, cancel := context.WithTimeout(r.baseCtx, r.fetchTimeout)
	defer cancel()

	data, err := fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[widgetID]
	if !ok || r.closed || e.gen != gen {
		return
	}

	if err != nil {
		// O último resultado é preservado; a falha vira uma notificação transitória
		e.lastError = err.Error()
		r.notify(widgetID, fmt.Sprintf("falha ao atualizar widget: %v", err))
		r.logger.Error("falha ao atualizar widget", "widget", widgetID, "error", err)
		return
	}

	e.data = data
	e.refreshedAt = time.Now().UTC()
	e.lastError = ""
}

// notify adiciona uma notificação, mantendo apenas as mais recentes
func (r *Registry) notify(widgetID, message string) {
	r.notifications = append(r.notifications, Notification{
		WidgetID: widgetID,
		Message:  message,
		At:       time.Now().UTC(),
	})
	if len(r.notifications) > maxNotifications {
		r.notifications = r.notifications[len(r.notifications)-maxNotifications:]
	}
}

// Snapshot retorna o último estado conhecido de um widget
func (r *Registry) Snapshot(widgetID string) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[widgetID]
	if !ok {
		return nil, ErrWidgetNotRegistered
	}

	return &Snapshot{
		WidgetID:        widgetID,
		IntervalSeconds: int(e.interval / time.Second),
		Data:            e.data,
		RefreshedAt:     e.refreshedAt,
		LastError:       e.lastError,
	}, nil
}

// Snapshots retorna o estado de todos os widgets registrados
func (r *Registry) Snapshots() []*Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots := make([]*Snapshot, 0, len(r.entries))
	for id, e := range r.entries {
		snapshots = append(snapshots, &Snapshot{
			WidgetID:        id,
			IntervalSeconds: int(e.interval / time.Second),
			Data:            e.data,
			RefreshedAt:     e.refreshedAt,
			LastError:       e.lastError,
		})
	}
	return snapshots
}

// Notifications retorna as notificações de falha pendentes e limpa a fila.
// As notificações são transitórias: cada uma é entregue uma única vez.
func (r *Registry) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	r.notifications = r.notifications[:0]
	return out
}

// ClearAll cancela todos os timers e remove todas as configurações persistidas
func (r *Registry) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	for _, e := range r.entries {
		e.gen++
		if e.stop != nil {
			close(e.stop)
			e.stop = nil
		}
		e.interval = 0
	}
	r.mu.Unlock()

	if err := r.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("falha ao limpar configurações de widgets: %w", err)
	}

	return nil
}

// Close cancela todos os timers e aguarda as buscas em voo.
// Nenhuma busca é iniciada ou aplicada depois do retorno.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for _, e := range r.entries {
		e.gen++
		if e.stop != nil {
			close(e.stop)
			e.stop = nil
		}
	}
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}
