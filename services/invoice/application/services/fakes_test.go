package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ghuser/contracthub/pkg/config"
	"github.com/ghuser/contracthub/pkg/contracts"
	"github.com/ghuser/contracthub/pkg/logger"
	invoicedomain "github.com/ghuser/contracthub/services/invoice/domain"
	"github.com/ghuser/contracthub/services/invoice/domain/models"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// memSubscriptions is an in-memory SubscriptionRepository. RecordReminder
// totals unpaid invoices from orders and appends to published the way the
// outbox would.
type memSubscriptions struct {
	mu        sync.Mutex
	subs      map[string]*models.ContractSubscription
	orders    *memInvoiceOrders
	published []contracts.InvoiceReminderEvent
	// block, when set, is received from before FindByPaymentDay returns.
	block chan struct{}
	// beforeRecord, when set, runs as RecordReminder starts.
	beforeRecord func()
}

func newMemSubscriptions(subs ...*models.ContractSubscription) *memSubscriptions {
	m := &memSubscriptions{subs: map[string]*models.ContractSubscription{}}
	for _, s := range subs {
		m.subs[s.ContractNumber] = s
	}
	return m
}

func (m *memSubscriptions) Insert(_ context.Context, s *models.ContractSubscription) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[s.ContractNumber]; ok {
		return false, nil
	}
	cp := *s
	m.subs[s.ContractNumber] = &cp
	return true, nil
}

func (m *memSubscriptions) FindByPaymentDay(_ context.Context, day int) ([]*models.ContractSubscription, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ContractSubscription
	for _, s := range m.subs {
		if s.IsActive && s.PaymentDay == day {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContractNumber < out[j].ContractNumber })
	return out, nil
}

func (m *memSubscriptions) RecordReminder(_ context.Context, contractNumber string, on time.Time, evt contracts.InvoiceReminderEvent) (bool, error) {
	if m.beforeRecord != nil {
		m.beforeRecord()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subs[contractNumber]
	if !ok || !s.IsActive {
		return false, nil
	}
	day := models.Day(on)
	if s.LastRemindedOn != nil && s.LastRemindedOn.Equal(day) {
		return false, nil
	}
	if m.orders != nil {
		evt.Amount = m.orders.sumUnpaid(contractNumber)
	}
	s.LastRemindedOn = &day
	m.published = append(m.published, evt)
	return true, nil
}

func (m *memSubscriptions) events() []contracts.InvoiceReminderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]contracts.InvoiceReminderEvent(nil), m.published...)
}

// memInvoiceOrders is an in-memory InvoiceOrderRepository.
type memInvoiceOrders struct {
	mu     sync.Mutex
	orders map[int64]*models.InvoiceOrder
}

func newMemInvoiceOrders() *memInvoiceOrders {
	return &memInvoiceOrders{orders: map[int64]*models.InvoiceOrder{}}
}

func (m *memInvoiceOrders) Insert(_ context.Context, o *models.InvoiceOrder) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.OriginalOrderID]; ok {
		return false, nil
	}
	cp := *o
	m.orders[o.OriginalOrderID] = &cp
	return true, nil
}

func (m *memInvoiceOrders) GetByOriginalOrderID(_ context.Context, id int64) (*models.InvoiceOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, invoicedomain.ErrInvoiceOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memInvoiceOrders) Update(_ context.Context, id int64, mutate func(o *models.InvoiceOrder) error) (*models.InvoiceOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, invoicedomain.ErrInvoiceOrderNotFound
	}
	cp := *o
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	m.orders[id] = &cp
	out := cp
	return &out, nil
}

func (m *memInvoiceOrders) ListByContract(_ context.Context, contractNumber string) ([]*models.InvoiceOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.InvoiceOrder
	for _, o := range m.orders {
		if o.ContractNumber == contractNumber {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OriginalOrderID < out[j].OriginalOrderID })
	return out, nil
}

func (m *memInvoiceOrders) sumUnpaid(contractNumber string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, o := range m.orders {
		if o.ContractNumber == contractNumber && o.Status == models.StatusUnpaid {
			total += o.Amount
		}
	}
	return total
}

func (m *memInvoiceOrders) MarkReminderSent(_ context.Context, contractNumber string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, o := range m.orders {
		if o.ContractNumber == contractNumber && o.Status == models.StatusUnpaid && !o.IsReminderSent {
			o.MarkReminderSent()
			n++
		}
	}
	return n, nil
}

func (m *memInvoiceOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}
