package models

import "strings"

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "inProgress"
	TaskDone       TaskStatus = "done"
	TaskArchived   TaskStatus = "archived"
)

// taskStatusSynonyms collapses the display labels and legacy French/English
// variants found in stored data into the canonical values.
var taskStatusSynonyms = map[string]TaskStatus{
	"todo":        TaskTodo,
	"to do":       TaskTodo,
	"à faire":     TaskTodo,
	"inprogress":  TaskInProgress,
	"in progress": TaskInProgress,
	"en cours":    TaskInProgress,
	"done":        TaskDone,
	"terminé":     TaskDone,
	"fait":        TaskDone,
	"archived":    TaskArchived,
	"archivé":     TaskArchived,
}

// NormalizeTaskStatus maps any known label or synonym to its canonical
// TaskStatus. Unknown labels default to "todo".
func NormalizeTaskStatus(s string) TaskStatus {
	if canonical, ok := taskStatusSynonyms[lower(s)]; ok {
		return canonical
	}
	return TaskTodo
}

// DisplayLabel returns the label shown in list/board views and pushed to
// external mirrors.
func (s TaskStatus) DisplayLabel() string {
	switch s {
	case TaskInProgress:
		return "In progress"
	case TaskDone:
		return "Done"
	case TaskArchived:
		return "Archived"
	default:
		return "To do"
	}
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "inProgress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectArchived   ProjectStatus = "archived"
)

var projectStatusSynonyms = map[string]ProjectStatus{
	"planned":     ProjectPlanned,
	"planifié":    ProjectPlanned,
	"inprogress":  ProjectInProgress,
	"in progress": ProjectInProgress,
	"en cours":    ProjectInProgress,
	"🔄 en cours":  ProjectInProgress,
	"completed":   ProjectCompleted,
	"terminé":     ProjectCompleted,
	"✅ terminé":   ProjectCompleted,
	"archived":    ProjectArchived,
	"archivé":     ProjectArchived,
}

// NormalizeProjectStatus maps any known label, including the emoji-prefixed
// forms the legacy data carries, to its canonical ProjectStatus.
func NormalizeProjectStatus(s string) ProjectStatus {
	if canonical, ok := projectStatusSynonyms[lower(s)]; ok {
		return canonical
	}
	return ProjectInProgress
}

func (s ProjectStatus) DisplayLabel() string {
	switch s {
	case ProjectPlanned:
		return "Planned"
	case ProjectCompleted:
		return "✅ Terminé"
	case ProjectArchived:
		return "Archivé"
	default:
		return "🔄 En cours"
	}
}

// CommerceStatus represents the pipeline column of a lead. The set is
// open-ended: labels outside the known set pass through unchanged so users
// can define their own pipeline columns.
type CommerceStatus string

const (
	CommerceProspect   CommerceStatus = "prospect"
	CommerceInProgress CommerceStatus = "inProgress"
	CommerceWon        CommerceStatus = "won"
	CommerceLost       CommerceStatus = "lost"
	CommerceArchived   CommerceStatus = "archived"
)

var commerceStatusSynonyms = map[string]CommerceStatus{
	"prospect":    CommerceProspect,
	"lead":        CommerceProspect,
	"à démarcher": CommerceProspect,
	"inprogress":  CommerceInProgress,
	"in progress": CommerceInProgress,
	"en cours":    CommerceInProgress,
	"won":         CommerceWon,
	"gagné":       CommerceWon,
	"lost":        CommerceLost,
	"perdu":       CommerceLost,
	"archived":    CommerceArchived,
	"archivé":     CommerceArchived,
}

// NormalizeCommerceStatus collapses known synonyms; unknown labels are kept
// verbatim.
func NormalizeCommerceStatus(s string) CommerceStatus {
	if canonical, ok := commerceStatusSynonyms[lower(s)]; ok {
		return canonical
	}
	return CommerceStatus(s)
}

// IsActive reports whether the status makes the lead "active", which triggers
// project auto-creation on transition.
func (s CommerceStatus) IsActive() bool {
	return s == CommerceInProgress || s == CommerceWon
}

func (s CommerceStatus) DisplayLabel() string {
	switch s {
	case CommerceProspect:
		return "À démarcher"
	case CommerceInProgress:
		return "En cours"
	case CommerceWon:
		return "Gagné"
	case CommerceLost:
		return "Perdu"
	case CommerceArchived:
		return "Archivé"
	default:
		return string(s)
	}
}
