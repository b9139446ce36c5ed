package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewStore(db)
}

const dashboardExport = `{
  "clients": [
    {"id": "c1", "name": "Maison Dupont"}
  ],
  "florists": [
    {
      "id": "f1",
      "name": "Alice",
      "hourlyRate": 30,
      "unavailabilityPeriods": [
        {"startDate": "2026-11-01", "endDate": "2026-11-03", "isActive": true},
        {"startDate": "bientôt", "endDate": "2026-11-03", "isActive": true}
      ]
    }
  ],
  "events": [
    {
      "id": "e1",
      "title": "Mariage",
      "date": "2026-10-23T22:00:00.000Z",
      "time": "14:00",
      "budget": 1500,
      "clientId": "c1",
      "floristsRequired": 1,
      "status": "confirmed",
      "assignedFlorists": [
        {"floristId": "f1", "status": "confirmed", "assignedAt": "2026-10-01T08:00:00.000Z"},
        {"floristId": "ghost", "status": "pending", "assignedAt": "2026-10-01T08:00:00.000Z"}
      ]
    },
    {
      "id": "e2",
      "date": "Invalid Date",
      "budget": 300,
      "clientId": "c404",
      "floristsRequired": 0,
      "status": "archived",
      "assignedFlorists": []
    }
  ]
}`

func TestImport_RepairsAndKeepsRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	paris := time.FixedZone("CEST", 2*3600)

	res, err := Import(ctx, store, strings.NewReader(dashboardExport), Options{Location: paris})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Events != 2 || res.Florists != 1 || res.Clients != 1 {
		t.Fatalf("unexpected counts %+v", res)
	}
	// битый период, ghost, битая дата, статус, floristsRequired, клиент
	if len(res.Warnings) != 6 {
		t.Fatalf("warnings = %d: %v", len(res.Warnings), res.Warnings)
	}

	e1, err := store.Events.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("get e1: %v", err)
	}
	if !e1.Date.Equal(time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("browser midnight must stay on the local day, got %v", e1.Date)
	}
	if len(e1.AssignedFlorists) != 1 || e1.AssignedFlorists[0].FloristID != "f1" {
		t.Fatalf("unknown florist must be skipped: %+v", e1.AssignedFlorists)
	}

	e2, err := store.Events.GetByID(ctx, "e2")
	if err != nil {
		t.Fatalf("get e2: %v", err)
	}
	if !e2.Date.IsZero() || e2.Status != model.EventStatusDraft || e2.FloristsRequired != model.DefaultFloristsRequired {
		t.Fatalf("unexpected repaired event %+v", e2)
	}
	c, err := store.Clients.GetByID(ctx, "c404")
	if err != nil || c.Name != PlaceholderClientName {
		t.Fatalf("placeholder client: %+v, %v", c, err)
	}

	f1, _ := store.Florists.GetByID(ctx, "f1")
	if len(f1.UnavailabilityPeriods) != 1 {
		t.Fatalf("periods = %d", len(f1.UnavailabilityPeriods))
	}
}

func TestImport_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 2; i++ {
		if _, err := Import(ctx, store, strings.NewReader(dashboardExport), Options{}); err != nil {
			t.Fatalf("Import #%d: %v", i, err)
		}
	}
	events, _ := store.Events.ListAll(ctx)
	florists, _ := store.Florists.ListAll(ctx)
	if len(events) != 2 || len(florists) != 1 || len(florists[0].UnavailabilityPeriods) != 1 {
		t.Fatalf("re-import duplicated data: %d events, %d florists", len(events), len(florists))
	}
}

func TestImport_MalformedDocument(t *testing.T) {
	if _, err := Import(context.Background(), newTestStore(t), strings.NewReader("{"), Options{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if _, err := Import(ctx, store, strings.NewReader(dashboardExport), Options{Location: time.UTC}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	var buf bytes.Buffer
	now := time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)
	doc, err := Export(ctx, store, &buf, now)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.ExportedAt != "2026-10-20T07:00:00.000Z" || len(doc.Clients) != 2 {
		t.Fatalf("unexpected document header %+v", doc)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	for _, key := range []string{"events", "florists", "clients"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("export has no %q", key)
		}
	}

	// Выгрузку можно загрузить в пустую базу без предупреждений о клиентах.
	fresh := newTestStore(t)
	res, err := Import(ctx, fresh, bytes.NewReader(buf.Bytes()), Options{})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if res.Events != 2 || res.Clients != 2 {
		t.Fatalf("re-import counts %+v", res)
	}
	for _, w := range res.Warnings {
		if strings.Contains(w, "client") {
			t.Fatalf("unexpected warning %q", w)
		}
	}
}
