// Package snapshot переносит данные дашборда в базу и обратно:
// JSON-документ {"events", "florists", "clients"} в формате localStorage.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/dto"
	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/repository"
)

// PlaceholderClientName — имя клиента, которого создаёт импорт
// для миссий со ссылкой на отсутствующий clientId.
const PlaceholderClientName = "Client inconnu"

// UnknownClientID получают миссии без clientId.
const UnknownClientID = "unknown-client"

type Document struct {
	ExportedAt string              `json:"exportedAt,omitempty"`
	Events     []dto.EventRecord   `json:"events"`
	Florists   []dto.FloristRecord `json:"florists"`
	Clients    []dto.ClientRecord  `json:"clients"`
}

// Result — сколько записей записано и что пришлось исправить.
type Result struct {
	Events   int
	Florists int
	Clients  int
	Warnings []string
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	appLog.Warn("snapshot import", "detail", msg)
}

type Options struct {
	// Пояс, в котором браузер сериализовал даты миссий.
	Location *time.Location
	// floristsRequired для записей без положительного значения.
	DefaultFloristsRequired int
}

// Import читает документ и сохраняет его одной транзакцией. Битые поля
// исправляются с предупреждением, запись целиком не отбрасывается.
func Import(ctx context.Context, store *repository.Store, r io.Reader, opts Options) (Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Result{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultFloristsRequired <= 0 {
		opts.DefaultFloristsRequired = model.DefaultFloristsRequired
	}

	var res Result
	err := store.Transaction(ctx, func(tx *repository.Store) error {
		clients := make(map[string]bool, len(doc.Clients))
		for _, rec := range doc.Clients {
			c := rec.ToModel()
			if c.Name == "" {
				c.Name = PlaceholderClientName
				res.warn(fmt.Sprintf("client %s: empty name", rec.ID))
			}
			if err := tx.Clients.Upsert(ctx, c); err != nil {
				return fmt.Errorf("upsert client %s: %w", rec.ID, err)
			}
			clients[c.ID] = true
			res.Clients++
		}

		florists := make(map[string]bool, len(doc.Florists))
		for _, rec := range doc.Florists {
			f, warnings := rec.ToModel()
			for _, w := range warnings {
				res.warn(w)
			}
			if err := tx.Florists.Upsert(ctx, f); err != nil {
				return fmt.Errorf("upsert florist %s: %w", rec.ID, err)
			}
			florists[f.ID] = true
			res.Florists++
		}

		for _, rec := range doc.Events {
			ev, warnings := rec.ToModel(opts.Location)
			for _, w := range warnings {
				res.warn(w)
			}
			if ev.FloristsRequired <= 0 {
				ev.FloristsRequired = opts.DefaultFloristsRequired
				res.warn(fmt.Sprintf("event %s: floristsRequired %d, using %d", rec.ID, rec.FloristsRequired, ev.FloristsRequired))
			}

			if ev.ClientID == "" {
				ev.ClientID = UnknownClientID
			}
			if !clients[ev.ClientID] {
				if err := ensureClient(ctx, tx, ev.ClientID); err != nil {
					return err
				}
				clients[ev.ClientID] = true
				res.warn(fmt.Sprintf("event %s: unknown client %q, placeholder created", rec.ID, ev.ClientID))
			}

			kept := ev.AssignedFlorists[:0]
			for _, a := range ev.AssignedFlorists {
				if !florists[a.FloristID] {
					if _, err := tx.Florists.GetByID(ctx, a.FloristID); err != nil {
						res.warn(fmt.Sprintf("event %s: skip unknown florist %q", rec.ID, a.FloristID))
						continue
					}
					florists[a.FloristID] = true
				}
				kept = append(kept, a)
			}
			ev.AssignedFlorists = kept

			if err := tx.Events.Upsert(ctx, ev); err != nil {
				return fmt.Errorf("upsert event %s: %w", rec.ID, err)
			}
			res.Events++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	appLog.Info("snapshot imported",
		"events", res.Events,
		"florists", res.Florists,
		"clients", res.Clients,
		"warnings", len(res.Warnings),
	)
	return res, nil
}

func ensureClient(ctx context.Context, tx *repository.Store, id string) error {
	if _, err := tx.Clients.GetByID(ctx, id); err == nil {
		return nil
	}
	if err := tx.Clients.Create(ctx, &model.Client{ID: id, Name: PlaceholderClientName}); err != nil {
		return fmt.Errorf("create placeholder client %s: %w", id, err)
	}
	return nil
}

// Export пишет все миссии, флористов и клиентов в w.
func Export(ctx context.Context, store *repository.Store, w io.Writer, now time.Time) (Document, error) {
	events, err := store.Events.ListAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list events: %w", err)
	}
	florists, err := store.Florists.ListAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list florists: %w", err)
	}
	clients, err := store.Clients.ListAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("list clients: %w", err)
	}

	doc := Document{
		ExportedAt: calendar.FormatTimestamp(&now),
		Events:     make([]dto.EventRecord, 0, len(events)),
		Florists:   make([]dto.FloristRecord, 0, len(florists)),
		Clients:    make([]dto.ClientRecord, 0, len(clients)),
	}
	for i := range events {
		doc.Events = append(doc.Events, dto.EventFromModel(&events[i]))
	}
	for i := range florists {
		doc.Florists = append(doc.Florists, dto.FloristFromModel(&florists[i]))
	}
	for i := range clients {
		doc.Clients = append(doc.Clients, dto.ClientFromModel(&clients[i]))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return Document{}, fmt.Errorf("encode snapshot: %w", err)
	}

	appLog.Info("snapshot exported", "events", len(doc.Events), "florists", len(doc.Florists), "clients", len(doc.Clients))
	return doc, nil
}
