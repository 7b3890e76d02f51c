package types

import (
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// TileEventRow mirrors the tile_events BigQuery schema. View and application
// events share the table; surface and room_type are null for views.
type TileEventRow struct {
	EventID     string             `bigquery:"event_id"`
	EventType   string             `bigquery:"event_type"`
	OccurredAt  time.Time          `bigquery:"occurred_at"`
	TileID      string             `bigquery:"tile_id"`
	ShowroomID  string             `bigquery:"showroom_id"`
	Surface     *string            `bigquery:"surface"`
	RoomType    *string            `bigquery:"room_type"`
	ActorUserID *string            `bigquery:"actor_user_id"`
	ActorRole   *string            `bigquery:"actor_role"`
	Payload     cbigquery.NullJSON `bigquery:"payload"`
}
