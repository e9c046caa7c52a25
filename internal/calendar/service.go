package calendar

import (
	"context"
	"log"

	"github.com/Food-order-lu/CRM-Task-manager/internal/models"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"
)

// Event is the provider-independent shape of a visit event.
type Event struct {
	Name     string
	Date     string // YYYY-MM-DD, empty means "today"
	Time     string // HH:MM, empty means all-day
	Assignee string
}

// RemoteCalendar is one person's calendar. DeleteEvent treats an event the
// provider already dropped as success.
type RemoteCalendar interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, ev Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// ClientResolver returns the calendar bound to one person's stored
// credential, or nil when the person has none.
type ClientResolver func(ctx context.Context, person string) RemoteCalendar

// Syncer reconciles tasks against remote calendars. Every call is
// best-effort: remote failures are logged and never surfaced, because the
// local task mutation has already been committed.
type Syncer struct {
	store   *store.Store
	resolve ClientResolver
}

// NewSyncer wires the reconciler to the persistence layer and a client
// resolver.
func NewSyncer(st *store.Store, resolve ClientResolver) *Syncer {
	return &Syncer{store: st, resolve: resolve}
}

func eventForTask(task *models.Task, assignee string) Event {
	ev := Event{Name: task.Name, Assignee: assignee}
	if task.DueDate != nil {
		ev.Date = *task.DueDate
	}
	if task.TimeSlot != nil {
		ev.Time = *task.TimeSlot
	}
	return ev
}

// Reconcile drives each (task, assignee) pair toward the desired state:
// an in-person task has one remote event per connected assignee, any other
// task has none.
func (s *Syncer) Reconcile(ctx context.Context, task *models.Task) {
	shouldSync := task.IsInPerson

	events, err := s.store.ListTaskEvents(task.ID)
	if err != nil {
		log.Printf("[Calendar Sync] load event mappings for %s: %v", task.ID, err)
		return
	}

	assignees := task.Assignees()
	current := make(map[string]bool, len(assignees))
	for _, name := range assignees {
		current[name] = true
	}

	// Events owned by people no longer on the task are dropped first.
	for assignee, eventID := range events {
		if current[assignee] {
			continue
		}
		s.deleteRemote(ctx, task.ID, assignee, eventID)
		delete(events, assignee)
	}

	for _, assignee := range assignees {
		client := s.resolve(ctx, assignee)
		if client == nil {
			continue
		}
		eventID := events[assignee]

		switch {
		case eventID == "" && !shouldSync:
			// nothing to do

		case eventID == "" && shouldSync:
			id, err := client.CreateEvent(ctx, eventForTask(task, assignee))
			if err != nil {
				log.Printf("[Calendar Sync] create event (%s): %v", assignee, err)
				continue
			}
			if err := s.store.SaveTaskEvent(task.ID, assignee, id); err != nil {
				log.Printf("[Calendar Sync] save event mapping (%s): %v", assignee, err)
			}
			if err := s.store.SetGoogleEventID(task.ID, &id); err != nil {
				log.Printf("[Calendar Sync] store event id (%s): %v", assignee, err)
			}

		case shouldSync:
			if err := client.UpdateEvent(ctx, eventID, eventForTask(task, assignee)); err != nil {
				log.Printf("[Calendar Sync] update event (%s): %v", assignee, err)
			}

		default:
			s.deleteRemote(ctx, task.ID, assignee, eventID)
		}
	}

	// The legacy id must be null whenever no remote event is believed to
	// exist, which can also happen with sync still on (assignee list emptied).
	if task.GoogleEventID != nil {
		remaining, err := s.store.ListTaskEvents(task.ID)
		if err == nil && len(remaining) == 0 {
			if err := s.store.SetGoogleEventID(task.ID, nil); err != nil {
				log.Printf("[Calendar Sync] clear event id for %s: %v", task.ID, err)
			}
		}
	}
}

// CleanupTask removes every remote event mapped to a task. Called with the
// task still loaded, right before the local delete cascades.
func (s *Syncer) CleanupTask(ctx context.Context, task *models.Task) {
	events, err := s.store.ListTaskEvents(task.ID)
	if err != nil {
		log.Printf("[Calendar Sync] load event mappings for %s: %v", task.ID, err)
		return
	}
	for assignee, eventID := range events {
		s.deleteRemote(ctx, task.ID, assignee, eventID)
	}
}

func (s *Syncer) deleteRemote(ctx context.Context, taskID, assignee, eventID string) {
	client := s.resolve(ctx, assignee)
	if client == nil {
		// Credential gone; drop the mapping, the remote event is orphaned.
		if err := s.store.DeleteTaskEvent(taskID, assignee); err != nil {
			log.Printf("[Calendar Sync] drop event mapping (%s): %v", assignee, err)
		}
		return
	}
	if err := client.DeleteEvent(ctx, eventID); err != nil {
		log.Printf("[Calendar Sync] delete event (%s): %v", assignee, err)
		return
	}
	if err := s.store.DeleteTaskEvent(taskID, assignee); err != nil {
		log.Printf("[Calendar Sync] drop event mapping (%s): %v", assignee, err)
	}
}
