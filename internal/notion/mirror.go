package notion

import (
	"context"
	"log"
	"time"

	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"

	"github.com/jomei/notionapi"
)

// pageCreator is the slice of the Notion API the mirror needs; tests fake it.
type pageCreator interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

type apiCreator struct {
	client *notionapi.Client
}

func (a apiCreator) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return a.client.Page.Create(ctx, req)
}

// Mirror pushes the local tables into the Notion databases the legacy
// Notion-backed deployment used, one page per row. One-way: Notion is a
// read-only copy for people who live in Notion.
type Mirror struct {
	store   *store.Store
	creator pageCreator

	crmDB      notionapi.DatabaseID
	projectsDB notionapi.DatabaseID
	tasksDB    notionapi.DatabaseID
}

// NewMirror builds a mirror from environment configuration. Returns nil when
// no API key is configured.
func NewMirror(cfg config.Config, st *store.Store) *Mirror {
	if cfg.NotionAPIKey == "" {
		return nil
	}
	return &Mirror{
		store:      st,
		creator:    apiCreator{client: notionapi.NewClient(notionapi.Token(cfg.NotionAPIKey))},
		crmDB:      notionapi.DatabaseID(cfg.NotionCRMDBID),
		projectsDB: notionapi.DatabaseID(cfg.NotionProjectsDBID),
		tasksDB:    notionapi.DatabaseID(cfg.NotionTasksDBID),
	}
}

// Counts reports how many pages each table contributed.
type Counts struct {
	Commerces int `json:"commerces"`
	Projects  int `json:"projects"`
	Tasks     int `json:"tasks"`
}

// MirrorAll pushes all three tables. Row-level push failures are logged and
// skipped; a listing failure aborts.
func (m *Mirror) MirrorAll(ctx context.Context) (Counts, error) {
	var counts Counts

	commerces, err := m.store.ListCommerces()
	if err != nil {
		return counts, err
	}
	for _, c := range commerces {
		if err := m.push(ctx, m.crmDB, commerceProperties(c)); err != nil {
			log.Printf("[Notion] push commerce %s: %v", c.Name, err)
			continue
		}
		counts.Commerces++
	}

	projects, err := m.store.ListProjects()
	if err != nil {
		return counts, err
	}
	for _, p := range projects {
		if err := m.push(ctx, m.projectsDB, projectProperties(p)); err != nil {
			log.Printf("[Notion] push project %s: %v", p.Name, err)
			continue
		}
		counts.Projects++
	}

	tasks, err := m.store.ListTasks()
	if err != nil {
		return counts, err
	}
	for _, t := range tasks {
		if err := m.push(ctx, m.tasksDB, taskProperties(t.Task)); err != nil {
			log.Printf("[Notion] push task %s: %v", t.Name, err)
			continue
		}
		counts.Tasks++
	}

	return counts, nil
}

func (m *Mirror) push(ctx context.Context, db notionapi.DatabaseID, props notionapi.Properties) error {
	_, err := m.creator.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: db},
		Properties: props,
	})
	return err
}

func title(content string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func richText(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func selectOption(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

// Property names below match the legacy Notion database schema.

func commerceProperties(c models.Commerce) notionapi.Properties {
	return notionapi.Properties{
		"Business Name": title(c.Name),
		"Status":        selectOption(c.Status.DisplayLabel()),
		"Contact Email": notionapi.EmailProperty{Email: c.Email},
		"Contact Phone": notionapi.PhoneNumberProperty{PhoneNumber: c.Phone},
		"Notes":         richText(c.Notes),
	}
}

func projectProperties(p models.Project) notionapi.Properties {
	return notionapi.Properties{
		"Project Name": title(p.Name),
		"Status":       selectOption(p.Status.DisplayLabel()),
		"Progress":     notionapi.NumberProperty{Number: float64(p.Progress)},
		"Description":  richText(p.Description),
	}
}

func taskProperties(t models.Task) notionapi.Properties {
	props := notionapi.Properties{
		"Task Name":        title(t.Name),
		"Status":           selectOption(t.Status.DisplayLabel()),
		"Task Category":    selectOption(t.Category),
		"Assigned To":      selectOption(t.Assignee),
		"In-person Visit?": notionapi.CheckboxProperty{Checkbox: t.IsInPerson},
	}
	if t.DueDate != nil {
		if parsed, err := time.Parse("2006-01-02", *t.DueDate); err == nil {
			start := notionapi.Date(parsed)
			props["Due Date"] = notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}
		}
	}
	return props
}
