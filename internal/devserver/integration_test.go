package devserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-client/internal/adapter"
	"github.com/daybook-app/daybook-client/internal/config"
	"github.com/daybook-app/daybook-client/internal/logger"
	"github.com/daybook-app/daybook-client/internal/service"
	"github.com/daybook-app/daybook-client/internal/store"
	"github.com/daybook-app/daybook-client/internal/validators"
	"github.com/daybook-app/daybook-client/models"
)

// alwaysOnline satisfies the engine's connectivity dependency for tests that
// talk to a live in-process server.
type alwaysOnline struct{}

func (alwaysOnline) IsOnline() bool              { return true }
func (alwaysOnline) Subscribe(func(bool)) string { return "test" }
func (alwaysOnline) Unsubscribe(string)          {}

func newIntegrationEngine(t *testing.T, ts *httptest.Server) (service.SyncEngine, *store.ClientStorages) {
	t.Helper()

	storages, err := store.NewClientStorages(config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}}, logger.Nop())
	require.NoError(t, err)

	server, err := adapter.NewHTTPSyncServer(config.ClientAdapter{
		ServerAddress:  ts.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	server.SetToken(testToken)

	engine := service.NewSyncEngine(storages, server, alwaysOnline{}, validators.NewSnapshotValidator(), config.ClientSync{
		Interval:      time.Hour,
		PushLimit:     100,
		PullLimit:     200,
		PullMaxPages:  50,
		ProbeInterval: time.Hour,
	}, logger.Nop())

	engine.Start(context.Background(), testUserID)
	t.Cleanup(engine.Stop)

	return engine, storages
}

// syncUntil drives sync cycles until check passes. Repeated triggers are
// needed because a cycle in flight drops concurrent triggers.
func syncUntil(t *testing.T, engine service.SyncEngine, check func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		_ = engine.SyncNow(context.Background())
		return check()
	}, 5*time.Second, 20*time.Millisecond)
}

func TestIntegration_LocalEditReachesServer(t *testing.T) {
	_, ts := newTestServer(t)
	engine, storages := newIntegrationEngine(t, ts)
	ctx := context.Background()

	require.NoError(t, engine.Enqueue(ctx, models.Mutation{
		Resource: models.ResourceNote,
		Op:       models.OpCreate,
		EntityID: "N1",
		Data:     json.RawMessage(`{"id":"N1","title":"groceries","body":"milk","updated_at_ms":1}`),
	}))

	syncUntil(t, engine, func() bool {
		row, err := storages.Entities.Get(ctx, testUserID, models.ResourceNote, "N1")
		return err == nil && row.LocalStatus == models.StatusClean
	})

	page := doPull(t, ts, 0, 10)
	require.Len(t, page.Changes["notes"], 1)

	var note models.Note
	require.NoError(t, json.Unmarshal(page.Changes["notes"][0], &note))
	assert.Equal(t, "milk", note.Body)

	status := engine.Status()
	assert.Zero(t, status.Pending)
	assert.Empty(t, status.LastError)
}

func TestIntegration_ServerChangesReachCache(t *testing.T) {
	_, ts := newTestServer(t)

	doPush(t, ts, models.PushRequest{Mutations: []models.PushMutation{
		pushMutation(models.ResourceTodoList, "L1", 10, `{"id":"L1","name":"home","updated_at_ms":10}`),
		pushMutation(models.ResourceTodoItem, "T1", 20, `{"id":"T1","list_id":"L1","title":"water plants","updated_at_ms":20}`),
	}})

	engine, storages := newIntegrationEngine(t, ts)
	ctx := context.Background()

	syncUntil(t, engine, func() bool {
		rows, err := storages.Entities.GetAll(ctx, testUserID)
		return err == nil && len(rows) == 2
	})

	cursor, err := storages.Cursor.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cursor)

	item, err := storages.Entities.Get(ctx, testUserID, models.ResourceTodoItem, "T1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClean, item.LocalStatus)
}

func TestIntegration_ConflictDetectedAndResolved(t *testing.T) {
	_, ts := newTestServer(t)

	// server version far in the future so any client edit is stale
	futureMs := time.Now().Add(time.Hour).UnixMilli()
	doPush(t, ts, models.PushRequest{Mutations: []models.PushMutation{
		pushMutation(models.ResourceNote, "N1", futureMs,
			`{"id":"N1","body":"server wins","updated_at_ms":`+jsonInt(futureMs)+`}`),
	}})

	engine, storages := newIntegrationEngine(t, ts)
	ctx := context.Background()

	require.NoError(t, engine.Enqueue(ctx, models.Mutation{
		Resource: models.ResourceNote,
		Op:       models.OpUpdate,
		EntityID: "N1",
		Data:     json.RawMessage(`{"id":"N1","body":"mine","updated_at_ms":1}`),
	}))

	syncUntil(t, engine, func() bool {
		row, err := storages.Entities.Get(ctx, testUserID, models.ResourceNote, "N1")
		return err == nil && row.InConflict()
	})

	row, err := storages.Entities.Get(ctx, testUserID, models.ResourceNote, "N1")
	require.NoError(t, err)

	var serverNote, localNote models.Note
	require.NoError(t, json.Unmarshal(row.ConflictServer, &serverNote))
	require.NoError(t, json.Unmarshal(row.ConflictLocal, &localNote))
	assert.Equal(t, "server wins", serverNote.Body)
	assert.Equal(t, "mine", localNote.Body)

	pending, err := storages.Outbox.CountPending(ctx, testUserID)
	require.NoError(t, err)
	assert.Zero(t, pending)

	require.NoError(t, engine.ResolveWithServer(ctx, models.ResourceNote, "N1"))

	row, err = storages.Entities.Get(ctx, testUserID, models.ResourceNote, "N1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusClean, row.LocalStatus)

	var adopted models.Note
	require.NoError(t, json.Unmarshal(row.Data, &adopted))
	assert.Equal(t, "server wins", adopted.Body)
}

func jsonInt(v int64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
