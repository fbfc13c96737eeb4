package queries

import (
	"context"
	"database/sql"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetEntityTimelineQueryHandler reads the event log directly, bypassing the
// domain repositories.
//
// Example:
//
//	handler := NewGetEntityTimelineQueryHandler(db)
//	query, _ := NewGetEntityTimelineQuery(ticket.Ref(), 0)
//
//	timeline, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, e := range timeline.Entries {
//	    fmt.Printf("%s %s %s by %s\n", e.CreatedAt, e.Stage, e.Kind, e.ActorID)
//	}
type GetEntityTimelineQueryHandler struct {
	db *gorm.DB
}

func NewGetEntityTimelineQueryHandler(db *gorm.DB) GetEntityTimelineQueryHandler {
	return GetEntityTimelineQueryHandler{db: db}
}

// Handle returns an empty timeline for an entity without events.
func (h GetEntityTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetEntityTimelineQuery,
) (GetEntityTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEntityTimelineQueryResponse{}, err
	}

	limit := sql.NullInt64{Int64: int64(query.Limit()), Valid: query.Limit() > 0}
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			stage,
			kind,
			actor_id,
			note,
			created_at
		FROM events
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY seq
		LIMIT ?
	`, query.Entity().Kind.String(), query.Entity().ID.Google(), limit).Rows()
	if err != nil {
		return GetEntityTimelineQueryResponse{}, err
	}
	defer rows.Close()

	resp := GetEntityTimelineQueryResponse{Entity: query.Entity(), Entries: make([]TimelineEntry, 0)}
	for rows.Next() {
		var (
			id        uuid.UUID
			stage     string
			note      sql.NullString
			entry     TimelineEntry
			createdAt time.Time
		)
		if err = rows.Scan(&id, &stage, &entry.Kind, &entry.ActorID, &note, &createdAt); err != nil {
			return GetEntityTimelineQueryResponse{}, err
		}

		eventID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return GetEntityTimelineQueryResponse{}, idErr
		}
		entry.ID = eventID
		entry.Stage = workflow.Stage(stage)
		entry.Note = note.String
		entry.CreatedAt = createdAt
		resp.Entries = append(resp.Entries, entry)
	}

	if err = rows.Err(); err != nil {
		return GetEntityTimelineQueryResponse{}, err
	}
	return resp, nil
}
