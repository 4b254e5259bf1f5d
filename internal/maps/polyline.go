package maps

// DecodePolyline decodes a Google encoded polyline into coordinates.
// Format reference: developers.google.com/maps/documentation/utilities/polylinealgorithm
func DecodePolyline(encoded string) []LatLng {
	var path []LatLng
	var lat, lng int64
	i := 0

	next := func() (int64, bool) {
		var result int64
		var shift uint
		for {
			if i >= len(encoded) {
				return 0, false
			}
			b := int64(encoded[i]) - 63
			i++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			return ^(result >> 1), true
		}
		return result >> 1, true
	}

	for i < len(encoded) {
		dLat, ok := next()
		if !ok {
			break
		}
		dLng, ok := next()
		if !ok {
			break
		}
		lat += dLat
		lng += dLng
		path = append(path, LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}
	return path
}
