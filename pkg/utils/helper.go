package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return result
}

// GenerateReservationCode creates the externally visible booking reference,
// e.g. "RSV-20260830-152233-4821".
func GenerateReservationCode() string {
	now := time.Now().UTC()
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))
	return fmt.Sprintf("RSV-%s-%s-%s", datePart, timePart, randomPart)
}
