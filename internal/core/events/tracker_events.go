package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseCreated       = "expense.created"
	EventTypeExpenseUpdated       = "expense.updated"
	EventTypeExpenseDeleted       = "expense.deleted"
	EventTypeExpenseStatusChanged = "expense.status_changed"
	EventTypeExpenseReported      = "expense.reported"
	EventTypeTripCreated          = "trip.created"
	EventTypeTripUpdated          = "trip.updated"
	EventTypeTripDeleted          = "trip.deleted"
	EventTypeTeamAdded            = "reference.team_added"
	EventTypeCategoryAdded        = "reference.category_added"
)

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// RecordEvent reports a change to a single expense or trip.
type RecordEvent struct {
	BaseEvent
	RecordID string `json:"record_id"`
}

func NewRecordEvent(eventType, recordID string) *RecordEvent {
	return &RecordEvent{
		BaseEvent: newBaseEvent(eventType, map[string]interface{}{
			"record_id": recordID,
		}),
		RecordID: recordID,
	}
}

type StatusChangedEvent struct {
	BaseEvent
	ExpenseID string `json:"expense_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func NewStatusChangedEvent(expenseID, from, to string) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseEvent: newBaseEvent(EventTypeExpenseStatusChanged, map[string]interface{}{
			"expense_id": expenseID,
			"from":       from,
			"to":         to,
		}),
		ExpenseID: expenseID,
		From:      from,
		To:        to,
	}
}

type ReportedEvent struct {
	BaseEvent
	ExpenseIDs []string `json:"expense_ids"`
}

func NewReportedEvent(ids []string) *ReportedEvent {
	return &ReportedEvent{
		BaseEvent: newBaseEvent(EventTypeExpenseReported, map[string]interface{}{
			"expense_ids": ids,
			"count":       len(ids),
		}),
		ExpenseIDs: ids,
	}
}

type ReferenceAddedEvent struct {
	BaseEvent
	Name string `json:"name"`
}

func NewReferenceAddedEvent(eventType, name string) *ReferenceAddedEvent {
	return &ReferenceAddedEvent{
		BaseEvent: newBaseEvent(eventType, map[string]interface{}{
			"name": name,
		}),
		Name: name,
	}
}
