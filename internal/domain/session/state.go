// Package session models the operator's navigation through the application
// as a pure state machine.
package session

import (
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
)

// View is the screen the operator is on.
type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewForm      View = "form"
	ViewReceipt   View = "receipt"
	ViewHistory   View = "history"
)

// State is the whole navigation state. Active is the record shown on the
// receipt view or pre-filled into the form when editing.
type State struct {
	View          View                  `json:"view"`
	Authenticated bool                  `json:"authenticated"`
	SelectedType  enum.BillingType      `json:"selected_type,omitempty"`
	Active        *entity.TuitionRecord `json:"active,omitempty"`
}

// Initial is the state before the passcode is entered.
func Initial() State {
	return State{View: ViewLogin}
}

// EventKind enumerates what can happen to the navigation state.
type EventKind string

const (
	EventLoginSucceeded  EventKind = "login_succeeded"
	EventLogout          EventKind = "logout"
	EventTypeSelected    EventKind = "type_selected"
	EventHistoryOpened   EventKind = "history_opened"
	EventReceiptViewed   EventKind = "receipt_viewed"
	EventEditRequested   EventKind = "edit_requested"
	EventRecordSubmitted EventKind = "record_submitted"
	EventBackToDashboard EventKind = "back_to_dashboard"
)

// Event is an input to Transition. Type is read by EventTypeSelected and
// Record by EventReceiptViewed and EventRecordSubmitted.
type Event struct {
	Kind   EventKind
	Type   enum.BillingType
	Record *entity.TuitionRecord
}

// Transition returns the state that follows s on e. Unknown events, and any
// event other than a successful login while unauthenticated, leave s as is.
func Transition(s State, e Event) State {
	if !s.Authenticated {
		if e.Kind == EventLoginSucceeded {
			return State{View: ViewDashboard, Authenticated: true}
		}
		return s
	}

	switch e.Kind {
	case EventLogout:
		return Initial()

	case EventTypeSelected:
		if !e.Type.IsValid() {
			return s
		}
		s.SelectedType = e.Type
		s.View = ViewForm

	case EventHistoryOpened:
		s.View = ViewHistory

	case EventReceiptViewed, EventRecordSubmitted:
		if e.Record == nil {
			return s
		}
		rec := e.Record.Clone()
		s.Active = &rec
		s.View = ViewReceipt

	case EventEditRequested:
		if s.Active != nil {
			s.SelectedType = s.Active.Type
		}
		if s.SelectedType == "" {
			return s
		}
		s.View = ViewForm

	case EventBackToDashboard:
		s.Active = nil
		s.SelectedType = ""
		s.View = ViewDashboard
	}

	return s
}
