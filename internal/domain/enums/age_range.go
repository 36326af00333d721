package enums

import (
	"fmt"
	"strings"
)

type AgeRange string

const (
	AgeRange0To2   AgeRange = "0-2"
	AgeRange3To5   AgeRange = "3-5"
	AgeRange6To8   AgeRange = "6-8"
	AgeRange9To12  AgeRange = "9-12"
	AgeRange13To16 AgeRange = "13-16"
	AgeRange17Plus AgeRange = "17+"
	AgeRangeAll    AgeRange = "All ages"
)

// Free-form ranges are rejected even when numerically sensible so the
// event filters downstream stay enumerable.
var allAgeRanges = map[AgeRange]struct{}{
	AgeRange0To2:   {},
	AgeRange3To5:   {},
	AgeRange6To8:   {},
	AgeRange9To12:  {},
	AgeRange13To16: {},
	AgeRange17Plus: {},
	AgeRangeAll:    {},
}

func ParseAgeRange(value string) (AgeRange, error) {
	ar := AgeRange(strings.TrimSpace(value))
	if _, ok := allAgeRanges[ar]; !ok {
		return "", fmt.Errorf("unknown age range %q", value)
	}
	return ar, nil
}

func (a AgeRange) Valid() bool {
	_, ok := allAgeRanges[a]
	return ok
}

func (a AgeRange) String() string {
	return string(a)
}

func AgeRanges() []AgeRange {
	return []AgeRange{
		AgeRange0To2,
		AgeRange3To5,
		AgeRange6To8,
		AgeRange9To12,
		AgeRange13To16,
		AgeRange17Plus,
		AgeRangeAll,
	}
}
