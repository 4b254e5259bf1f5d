package tripmap

import "hash/fnv"

var palette = []string{
	"#4285F4", // Blue
	"#34A853", // Green
	"#FBBC04", // Yellow
	"#EA4335", // Red
	"#9334E6", // Purple
	"#FF6D00", // Orange
	"#00ACC1", // Cyan
	"#E91E63", // Pink
}

// ColorFor picks a palette color from a stable hash of the participant id,
// so a participant keeps its color no matter how the fan-out response is
// ordered or who joins or leaves the trip.
func ColorFor(participantId string) string {
	h := fnv.New32a()
	h.Write([]byte(participantId))
	return palette[h.Sum32()%uint32(len(palette))]
}
