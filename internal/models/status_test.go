package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTaskStatus_CollapsesSynonyms(t *testing.T) {
	cases := map[string]TaskStatus{
		"To do":       TaskTodo,
		"todo":        TaskTodo,
		"En cours":    TaskInProgress,
		"In progress": TaskInProgress,
		"Done":        TaskDone,
		"Terminé":     TaskDone,
		"Archivé":     TaskArchived,
		"garbage":     TaskTodo,
	}
	for input, want := range cases {
		require.Equal(t, want, NormalizeTaskStatus(input), "input %q", input)
	}
}

func TestNormalizeProjectStatus_CollapsesEmojiLabels(t *testing.T) {
	require.Equal(t, ProjectInProgress, NormalizeProjectStatus("🔄 En cours"))
	require.Equal(t, ProjectCompleted, NormalizeProjectStatus("✅ Terminé"))
	require.Equal(t, ProjectPlanned, NormalizeProjectStatus("Planned"))
}

func TestNormalizeCommerceStatus_UnknownLabelsPassThrough(t *testing.T) {
	require.Equal(t, CommerceWon, NormalizeCommerceStatus("Gagné"))
	require.Equal(t, CommerceProspect, NormalizeCommerceStatus("À démarcher"))
	require.Equal(t, CommerceStatus("Ma colonne"), NormalizeCommerceStatus("Ma colonne"))
}

func TestCommerceStatus_IsActive(t *testing.T) {
	require.True(t, CommerceWon.IsActive())
	require.True(t, CommerceInProgress.IsActive())
	require.False(t, CommerceProspect.IsActive())
	require.False(t, CommerceLost.IsActive())
}

func TestTaskAssignees_SplitsAndFilters(t *testing.T) {
	task := Task{Assignee: "Ana, Tiago , Unassigned,"}
	require.Equal(t, []string{"Ana", "Tiago"}, task.Assignees())

	require.Nil(t, Task{Assignee: "Unassigned"}.Assignees())
	require.Nil(t, Task{Assignee: ""}.Assignees())
}
