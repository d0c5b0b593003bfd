package board

// Stroke is one line segment drawn by a client: two endpoints plus pen
// color and width. Strokes are immutable once recorded; a room's drawing
// is the ordered sequence of its strokes.
type Stroke struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}
