package util

import "encoding/json"

// Compares two maps A and B, and returns two maps consisting of extras and missing from A
func CompareMaps[K comparable, V any](from map[K]V, to map[K]V) (extras map[K]V, missing map[K]V) {
	extras = make(map[K]V)
	missing = make(map[K]V)

	// If a key of the from-map does not exist in the to-map, it is missing
	for key, value := range from {
		if _, exists := to[key]; !exists {
			missing[key] = value
		}
	}

	for key, value := range to {
		if _, exists := from[key]; !exists {
			extras[key] = value
		}
	}

	return extras, missing
}

// Returns a JSON string representation of a struct
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}
