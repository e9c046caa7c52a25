package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Food-order-lu/CRM-Task-manager/internal/auth"
	"github.com/Food-order-lu/CRM-Task-manager/internal/calendar"
	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"
	"github.com/Food-order-lu/CRM-Task-manager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRemote counts calls in place of a person's remote calendar.
type fakeRemote struct {
	creates int
	updates int
	deletes int
}

func (f *fakeRemote) CreateEvent(ctx context.Context, ev calendar.Event) (string, error) {
	f.creates++
	return fmt.Sprintf("evt-%d", f.creates), nil
}

func (f *fakeRemote) UpdateEvent(ctx context.Context, eventID string, ev calendar.Event) error {
	f.updates++
	return nil
}

func (f *fakeRemote) DeleteEvent(ctx context.Context, eventID string) error {
	f.deletes++
	return nil
}

// setupEnv wires the handler package against an in-memory database and a
// fake calendar resolver, and returns the raw handles tests need.
func setupEnv(t *testing.T, cfg config.Config, connected map[string]*fakeRemote, creds auth.CredentialStore) (*store.Store, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	st := store.New(db)

	resolve := func(ctx context.Context, person string) calendar.RemoteCalendar {
		if remote, ok := connected[person]; ok {
			return remote
		}
		return nil
	}
	if creds == nil {
		creds = auth.NewStaticStore(nil)
	}
	Init(cfg, st, calendar.NewSyncer(st, resolve), nil, nil, creds)
	return st, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
