package repository

import (
	"os"
	"strconv"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Monetary values are stored as strings to avoid float drift in DynamoDB
// number handling.
func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
