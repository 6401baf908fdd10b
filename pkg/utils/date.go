package utils

import (
	"log"
	"time"
)

// Customer exports carry local Taiwan timestamps without zone info.
func GetTaipeiLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}
