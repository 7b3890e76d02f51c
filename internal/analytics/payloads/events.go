package payloads

// TileViewEvent is recorded every time a customer opens a tile detail view,
// whether from browsing or a QR scan.
type TileViewEvent struct {
	TileID     string `json:"tileId"`
	ShowroomID string `json:"showroomId"`
	Source     string `json:"source,omitempty"`
}

// TileApplicationEvent is recorded every time a tile is applied to a room
// surface in the visualizer. Re-applies emit again, so consumers that need
// distinct applications must dedupe on their side.
type TileApplicationEvent struct {
	TileID     string `json:"tileId"`
	ShowroomID string `json:"showroomId"`
	Surface    string `json:"surface"`
	RoomType   string `json:"roomType"`
}
