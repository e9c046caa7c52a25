package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Food-order-lu/CRM-Task-manager/internal/cache"
	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const refreshTokenKeyPrefix = "GOOGLE_REFRESH_TOKEN_"

// Google manages per-person Google Calendar clients. Clients are built
// lazily from refresh tokens persisted in the config table and kept in a
// keyed registry that is safe to rebuild at any time.
type Google struct {
	cfg      config.Config
	store    *store.Store
	oauth    *oauth2.Config
	registry *cache.Keyed[string, RemoteCalendar]
}

// NewGoogle builds the Google integration from environment configuration.
func NewGoogle(cfg config.Config, st *store.Store) *Google {
	return &Google{
		cfg:   cfg,
		store: st,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{gcal.CalendarScope},
			Endpoint:     googleoauth.Endpoint,
		},
		registry: cache.NewKeyed[string, RemoteCalendar](),
	}
}

// Enabled reports whether the integration is configured at all.
func (g *Google) Enabled() bool {
	return g.cfg.GoogleCalendarEnabled && g.cfg.GoogleClientID != "" && g.cfg.GoogleClientSecret != ""
}

// AuthURL returns the consent redirect for one person; the person id rides
// in the OAuth state and comes back on the callback.
func (g *Google) AuthURL(person string) string {
	return g.oauth.AuthCodeURL(person,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// HandleCallback exchanges the consent code, persists the refresh token under
// the person's config key and registers a live client.
func (g *Google) HandleCallback(ctx context.Context, code, person string) error {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if token.RefreshToken != "" {
		if err := g.store.SetConfig(refreshTokenKeyPrefix+person, token.RefreshToken); err != nil {
			return err
		}
	}

	client, err := g.buildClient(ctx, g.oauth.TokenSource(ctx, token))
	if err != nil {
		return err
	}
	g.registry.Set(person, client, 0)
	log.Printf("[Google Calendar] authenticated %s", person)
	return nil
}

// Connected reports whether the person has a usable credential.
func (g *Google) Connected(ctx context.Context, person string) bool {
	return g.Resolve(ctx, person) != nil
}

// Resolve implements ClientResolver. It returns nil when the integration is
// disabled or the person never connected a calendar.
func (g *Google) Resolve(ctx context.Context, person string) RemoteCalendar {
	if !g.Enabled() {
		return nil
	}
	if client, ok := g.registry.Get(person); ok {
		return client
	}

	refreshToken, ok, err := g.store.GetConfig(refreshTokenKeyPrefix + person)
	if err != nil {
		log.Printf("[Google Calendar] read refresh token for %s: %v", person, err)
		return nil
	}
	if !ok {
		return nil
	}

	source := g.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	client, err := g.buildClient(ctx, source)
	if err != nil {
		log.Printf("[Google Calendar] init client for %s: %v", person, err)
		return nil
	}
	g.registry.Set(person, client, 0)
	log.Printf("[Google Calendar] client initialized for %s", person)
	return client
}

func (g *Google) buildClient(ctx context.Context, source oauth2.TokenSource) (RemoteCalendar, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, err
	}
	return &googleCalendar{svc: svc, timezone: g.cfg.CalendarTimezone}, nil
}

// googleCalendar adapts one authenticated calendar.Service to
// RemoteCalendar, always against the person's primary calendar.
type googleCalendar struct {
	svc      *gcal.Service
	timezone string
}

func (c *googleCalendar) CreateEvent(ctx context.Context, ev Event) (string, error) {
	created, err := c.svc.Events.Insert("primary", buildEvent(ev, c.timezone)).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (c *googleCalendar) UpdateEvent(ctx context.Context, eventID string, ev Event) error {
	_, err := c.svc.Events.Patch("primary", eventID, buildEvent(ev, c.timezone)).Context(ctx).Do()
	return err
}

func (c *googleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.svc.Events.Delete("primary", eventID).Context(ctx).Do()
	if gerr, ok := err.(*googleapi.Error); ok && (gerr.Code == 404 || gerr.Code == 410) {
		// already gone remotely; that is the state we wanted
		return nil
	}
	return err
}

// buildEvent maps a visit to the Google event shape: a one-hour timed event
// when a time slot is present, an all-day event otherwise. A missing due
// date falls back to today.
func buildEvent(ev Event, timezone string) *gcal.Event {
	date := ev.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	out := &gcal.Event{
		Summary:     ev.Name,
		Description: fmt.Sprintf("Assigné à: %s\nSync via CRM Task Manager.", ev.Assignee),
	}

	if ev.Time != "" {
		start, err := time.Parse("15:04", ev.Time)
		if err == nil {
			end := start.Add(time.Hour)
			out.Start = &gcal.EventDateTime{
				DateTime: fmt.Sprintf("%sT%s:00", date, start.Format("15:04")),
				TimeZone: timezone,
			}
			out.End = &gcal.EventDateTime{
				DateTime: fmt.Sprintf("%sT%s:00", date, end.Format("15:04")),
				TimeZone: timezone,
			}
			return out
		}
		log.Printf("[Google Calendar] bad time slot %q, falling back to all-day", ev.Time)
	}

	out.Start = &gcal.EventDateTime{Date: date}
	out.End = &gcal.EventDateTime{Date: date}
	return out
}
