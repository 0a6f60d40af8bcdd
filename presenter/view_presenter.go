package presenter

import (
	"sync"
	"time"

	"weatherdash.app/models"
)

// Schedule runs f after the given delay. The production implementation is
// backed by time.AfterFunc; tests substitute an immediate one.
type Schedule func(delay time.Duration, f func())

// AfterFuncSchedule schedules through the runtime timer.
func AfterFuncSchedule(delay time.Duration, f func()) {
	time.AfterFunc(delay, f)
}

// ImmediateSchedule runs f synchronously, for deterministic tests.
func ImmediateSchedule(_ time.Duration, f func()) {
	f()
}

// ViewPresenter accumulates region values and section reveal state into a
// snapshot that the HTTP layer serves. Section reveals are staged with the
// page animation delays through the injected Schedule.
type ViewPresenter struct {
	mu        sync.RWMutex
	values    map[Region]string
	revealed  map[Section]bool
	loading   bool
	lastError string
	updatedAt time.Time
	schedule  Schedule
	now       func() time.Time
}

func NewViewPresenter(schedule Schedule) *ViewPresenter {
	if schedule == nil {
		schedule = AfterFuncSchedule
	}
	return &ViewPresenter{
		values:   make(map[Region]string),
		revealed: make(map[Section]bool),
		schedule: schedule,
		now:      time.Now,
	}
}

func (p *ViewPresenter) SetValue(region Region, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[region] = value
	p.updatedAt = p.now()
}

func (p *ViewPresenter) Reveal(section Section) {
	p.schedule(revealDelays[section], func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.revealed[section] = true
		p.updatedAt = p.now()
	})
}

func (p *ViewPresenter) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
	if loading {
		p.lastError = ""
	}
	p.updatedAt = p.now()
}

func (p *ViewPresenter) NotifyError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastError = message
	p.updatedAt = p.now()
}

// Snapshot returns a copy of the current view state.
func (p *ViewPresenter) Snapshot() models.DashboardView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	values := make(map[string]string, len(p.values))
	for region, value := range p.values {
		values[string(region)] = value
	}
	revealed := make(map[string]bool, len(p.revealed))
	for section, on := range p.revealed {
		revealed[string(section)] = on
	}

	return models.DashboardView{
		Values:    values,
		Revealed:  revealed,
		Loading:   p.loading,
		Error:     p.lastError,
		UpdatedAt: p.updatedAt,
	}
}
