// Package tracker owns the expense and trip collections. Every mutation is
// applied under one lock and written through to storage before the lock is
// released, so readers never see state that storage has not been asked to
// persist.
package tracker

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/category"
	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/core/events"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/storage"
	"github.com/mmwale/expense-tracker/internal/trip"
	"github.com/shopspring/decimal"
)

type Option func(*Store)

// WithClock replaces time.Now for default dates and upcoming-trip queries.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

func WithTeams(teams ...string) Option {
	return func(s *Store) {
		s.teams = category.NewList(teams...)
	}
}

func WithCategories(categories ...string) Option {
	return func(s *Store) {
		s.categories = category.NewList(categories...)
	}
}

type Store struct {
	mu         sync.RWMutex
	expenses   []expense.Expense
	trips      []trip.Trip
	teams      *category.List
	categories *category.List
	closed     bool

	adapter   *storage.Adapter
	publisher events.Publisher
	clock     func() time.Time
	newID     func() string
	logger    *slog.Logger
}

// NewStore loads the persisted collections once and returns the store that
// owns them from then on.
func NewStore(adapter *storage.Adapter, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		adapter:    adapter,
		logger:     logger,
		clock:      time.Now,
		newID:      uuid.NewString,
		teams:      category.NewList(category.DefaultTeams...),
		categories: category.NewList(category.DefaultCategories...),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.expenses = storage.Load(adapter, storage.KeyExpenses, []expense.Expense{})
	s.trips = storage.Load(adapter, storage.KeyTrips, []trip.Trip{})
	if s.expenses == nil {
		s.expenses = []expense.Expense{}
	}
	if s.trips == nil {
		s.trips = []trip.Trip{}
	}

	s.logger.Info("tracker store loaded",
		"expenses", len(s.expenses),
		"trips", len(s.trips))
	return s
}

// Close ends the store's lifecycle. Later mutations are dropped with a
// warning; reads keep working on the last state.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.adapter.Close()
}

// lockForWrite takes the write lock unless the store is closed, in which
// case it logs and reports false.
func (s *Store) lockForWrite(op string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("mutation on closed store ignored", "op", op, "error", internal.ErrStoreClosed)
		return false
	}
	return true
}

func (s *Store) today() string {
	return calendar.Today(s.clock)
}

// freshID draws ids until one is unused in ids.
func freshID[T any](newID func() string, items []T, idOf func(T) string) string {
	for {
		id := newID()
		if !slices.ContainsFunc(items, func(it T) bool { return idOf(it) == id }) {
			return id
		}
	}
}

func (s *Store) persistExpenses() {
	s.adapter.Save(storage.KeyExpenses, s.expenses)
}

func (s *Store) persistTrips() {
	s.adapter.Save(storage.KeyTrips, s.trips)
}

func (s *Store) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSync(context.Background(), event); err != nil {
		s.logger.Warn("event handler returned error",
			"event_type", event.EventType(),
			"error", err)
	}
}

// ---------- expenses ----------

func expenseID(e expense.Expense) string { return e.ID }

func (s *Store) indexOfExpense(id string) int {
	return slices.IndexFunc(s.expenses, func(e expense.Expense) bool { return e.ID == id })
}

// AddExpense creates an expense with a fresh id and the creation defaults,
// appends it and persists the collection.
func (s *Store) AddExpense(dto expense.CreateExpenseDTO) (expense.Expense, error) {
	if err := dto.Validate(); err != nil {
		return expense.Expense{}, err
	}
	if !s.lockForWrite("add_expense") {
		return expense.Expense{}, internal.ErrStoreClosed
	}

	e := expense.NewExpense(freshID(s.newID, s.expenses, expenseID), s.today(), dto)
	s.expenses = append(s.expenses, e)
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("expense created",
		"expense_id", e.ID,
		"team", e.Team,
		"amount", e.Amount.String(),
		"status", e.Status)
	s.publish(events.NewRecordEvent(events.EventTypeExpenseCreated, e.ID))
	return e, nil
}

// UpdateExpense replaces the expense with the same id, keeping its position.
// An unknown id is ignored. The status must still be one of the known values.
func (s *Store) UpdateExpense(updated expense.Expense) error {
	if !updated.Status.Valid() {
		return expense.ErrInvalidExpenseStatus
	}
	if !s.lockForWrite("update_expense") {
		return internal.ErrStoreClosed
	}

	idx := s.indexOfExpense(updated.ID)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("update of unknown expense ignored", "expense_id", updated.ID)
		return nil
	}
	s.expenses[idx] = updated
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("expense updated", "expense_id", updated.ID)
	s.publish(events.NewRecordEvent(events.EventTypeExpenseUpdated, updated.ID))
	return nil
}

// DeleteExpense removes the expense if present.
func (s *Store) DeleteExpense(id string) {
	if !s.lockForWrite("delete_expense") {
		return
	}

	idx := s.indexOfExpense(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.expenses = slices.Delete(s.expenses, idx, idx+1)
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("expense deleted", "expense_id", id)
	s.publish(events.NewRecordEvent(events.EventTypeExpenseDeleted, id))
}

// ApproveExpense sets the status to approved whatever it was before.
func (s *Store) ApproveExpense(id string) {
	s.setStatus(id, "approve_expense", (*expense.Expense).Approve)
}

// RejectExpense sets the status to rejected whatever it was before.
func (s *Store) RejectExpense(id string) {
	s.setStatus(id, "reject_expense", (*expense.Expense).Reject)
}

func (s *Store) setStatus(id, op string, apply func(*expense.Expense)) {
	if !s.lockForWrite(op) {
		return
	}

	idx := s.indexOfExpense(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	from := s.expenses[idx].Status
	apply(&s.expenses[idx])
	to := s.expenses[idx].Status
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("expense status set", "expense_id", id, "from", from, "to", to)
	s.publish(events.NewStatusChangedEvent(id, string(from), string(to)))
}

// TransitionStatus moves an expense along the approval workflow and rejects
// any move the workflow does not allow.
func (s *Store) TransitionStatus(id string, to expense.Status) (expense.Expense, error) {
	if !to.Valid() {
		return expense.Expense{}, expense.ErrInvalidExpenseStatus
	}
	if !s.lockForWrite("transition_status") {
		return expense.Expense{}, internal.ErrStoreClosed
	}

	idx := s.indexOfExpense(id)
	if idx < 0 {
		s.mu.Unlock()
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	from := s.expenses[idx].Status
	if !from.CanTransitionTo(to) {
		s.mu.Unlock()
		s.logger.Warn("status transition rejected",
			"expense_id", id,
			"current_status", from,
			"requested_status", to)
		return expense.Expense{}, expense.ErrInvalidStatusTransition
	}
	s.expenses[idx].Status = to
	e := s.expenses[idx]
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("expense status transitioned", "expense_id", id, "from", from, "to", to)
	s.publish(events.NewStatusChangedEvent(id, string(from), string(to)))
	return e, nil
}

// MarkReported flags the given expenses as folded into a filed report and
// returns how many changed.
func (s *Store) MarkReported(ids ...string) int {
	if !s.lockForWrite("mark_reported") {
		return 0
	}

	var changed []string
	for i := range s.expenses {
		if !s.expenses[i].Reported && slices.Contains(ids, s.expenses[i].ID) {
			s.expenses[i].Reported = true
			changed = append(changed, s.expenses[i].ID)
		}
	}
	if len(changed) > 0 {
		s.persistExpenses()
	}
	s.mu.Unlock()

	if len(changed) > 0 {
		s.logger.Info("expenses marked reported", "count", len(changed))
		s.publish(events.NewReportedEvent(changed))
	}
	return len(changed)
}

// ReceiptInput carries the receipt details attached to an existing expense.
// Empty fields leave the expense untouched.
type ReceiptInput struct {
	Text     string
	Amount   string
	Category string
}

// AttachReceipt records receipt details on an expense.
func (s *Store) AttachReceipt(id string, in ReceiptInput) (expense.Expense, error) {
	if !s.lockForWrite("attach_receipt") {
		return expense.Expense{}, internal.ErrStoreClosed
	}

	idx := s.indexOfExpense(id)
	if idx < 0 {
		s.mu.Unlock()
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	e := &s.expenses[idx]
	if in.Text != "" {
		e.ReceiptText = in.Text
	}
	if in.Amount != "" {
		e.Amount = amountFromInput(in.Amount)
	}
	if in.Category != "" {
		e.Category = in.Category
	}
	updated := *e
	s.persistExpenses()
	s.mu.Unlock()

	s.logger.Info("receipt attached", "expense_id", id)
	s.publish(events.NewRecordEvent(events.EventTypeExpenseUpdated, id))
	return updated, nil
}

// ---------- trips ----------

func tripID(t trip.Trip) string { return t.ID }

func (s *Store) indexOfTrip(id string) int {
	return slices.IndexFunc(s.trips, func(t trip.Trip) bool { return t.ID == id })
}

func (s *Store) AddTrip(dto trip.CreateTripDTO) (trip.Trip, error) {
	if err := dto.Validate(); err != nil {
		return trip.Trip{}, err
	}
	if !s.lockForWrite("add_trip") {
		return trip.Trip{}, internal.ErrStoreClosed
	}

	t := trip.NewTrip(freshID(s.newID, s.trips, tripID), s.today(), dto)
	s.trips = append(s.trips, t)
	s.persistTrips()
	s.mu.Unlock()

	s.logger.Info("trip created",
		"trip_id", t.ID,
		"destination", t.Destination,
		"start_date", t.StartDate)
	s.publish(events.NewRecordEvent(events.EventTypeTripCreated, t.ID))
	return t, nil
}

// UpdateTrip replaces the trip with the same id. Unknown ids are ignored.
func (s *Store) UpdateTrip(updated trip.Trip) error {
	if !updated.Status.Valid() {
		return trip.ErrInvalidTripStatus
	}
	if !s.lockForWrite("update_trip") {
		return internal.ErrStoreClosed
	}

	idx := s.indexOfTrip(updated.ID)
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("update of unknown trip ignored", "trip_id", updated.ID)
		return nil
	}
	s.trips[idx] = updated
	s.persistTrips()
	s.mu.Unlock()

	s.logger.Info("trip updated", "trip_id", updated.ID)
	s.publish(events.NewRecordEvent(events.EventTypeTripUpdated, updated.ID))
	return nil
}

func (s *Store) DeleteTrip(id string) {
	if !s.lockForWrite("delete_trip") {
		return
	}

	idx := s.indexOfTrip(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.trips = slices.Delete(s.trips, idx, idx+1)
	s.persistTrips()
	s.mu.Unlock()

	s.logger.Info("trip deleted", "trip_id", id)
	s.publish(events.NewRecordEvent(events.EventTypeTripDeleted, id))
}

// ---------- reference lists ----------

func (s *Store) AddTeam(name string) {
	if !s.lockForWrite("add_team") {
		return
	}
	s.teams.Add(name)
	s.mu.Unlock()

	s.publish(events.NewReferenceAddedEvent(events.EventTypeTeamAdded, name))
}

func (s *Store) AddCategory(name string) {
	if !s.lockForWrite("add_category") {
		return
	}
	s.categories.Add(name)
	s.mu.Unlock()

	s.publish(events.NewReferenceAddedEvent(events.EventTypeCategoryAdded, name))
}

// ---------- queries ----------

func (s *Store) Expenses() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses)
}

// Expense looks up one expense by id.
func (s *Store) Expense(id string) (expense.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOfExpense(id)
	if idx < 0 {
		return expense.Expense{}, false
	}
	return s.expenses[idx], true
}

func (s *Store) Trips() []trip.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trips)
}

func (s *Store) Trip(id string) (trip.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOfTrip(id)
	if idx < 0 {
		return trip.Trip{}, false
	}
	return s.trips[idx], true
}

func (s *Store) Teams() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams.All()
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.All()
}

func (s *Store) UnreportedExpenses() []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.Unreported(s.expenses)
}

func (s *Store) ExpensesByTrip(tripID string) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.ByTrip(s.expenses, tripID)
}

func (s *Store) ExpensesByTeam(team string) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.ByTeam(s.expenses, team)
}

func (s *Store) ExpensesByCategory(category string) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.ByCategory(s.expenses, category)
}

func (s *Store) ExpensesByStatus(status expense.Status) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.ByStatus(s.expenses, status)
}

// ExpensesByDateRange filters on the inclusive [start, end] window; either
// bound may be empty.
func (s *Store) ExpensesByDateRange(start, end string) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.ByDateRange(s.expenses, start, end)
}

func (s *Store) FilterExpenses(f expense.Filter) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.Apply(s.expenses, f)
}

// TotalExpenses sums every amount; malformed amounts count as zero.
func (s *Store) TotalExpenses() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expense.Total(s.expenses)
}

// UpcomingTrips returns trips starting today or later, earliest first.
func (s *Store) UpcomingTrips() []trip.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return trip.Upcoming(s.trips, s.clock())
}

func (s *Store) FilterTrips(f trip.Filter) []trip.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return trip.Apply(s.trips, f)
}
