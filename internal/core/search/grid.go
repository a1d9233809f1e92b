// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

// GridSlots is the number of cards on the home grid.
const GridSlots = 12

// SlotKind describes what a single grid cell renders.
type SlotKind int

const (
	// SlotPlaceholder is an empty card (loading state or padding).
	SlotPlaceholder SlotKind = iota

	// SlotFilled renders a record.
	SlotFilled

	// SlotNoMatches is a single full-row "no matches" message.
	SlotNoMatches
)

// Slot is one cell of the presented grid.
type Slot[R Record] struct {
	Kind   SlotKind
	Record R
}

// Present composes the grid for the current screen state.
//
// # Rules
//
//   - loading: [GridSlots] placeholders, regardless of everything else.
//   - searching, no results: one [SlotNoMatches].
//   - searching, results: exactly one filled slot per result, no padding.
//   - browsing: up to [GridSlots] filled slots, padded with placeholders.
func Present[R Record](loading bool, query string, result Result[R]) []Slot[R] {
	if loading {
		return placeholders[R](GridSlots)
	}

	if IsSearching(query) {
		if result.Len() == 0 {
			return []Slot[R]{{Kind: SlotNoMatches}}
		}
		slots := make([]Slot[R], 0, result.Len())
		for _, record := range result.Records {
			slots = append(slots, Slot[R]{Kind: SlotFilled, Record: record})
		}
		return slots
	}

	filled := min(GridSlots, result.Len())
	slots := make([]Slot[R], 0, GridSlots)
	for _, record := range result.Records[:filled] {
		slots = append(slots, Slot[R]{Kind: SlotFilled, Record: record})
	}
	return append(slots, placeholders[R](GridSlots-filled)...)
}

func placeholders[R Record](n int) []Slot[R] {
	slots := make([]Slot[R], n)
	for i := range slots {
		slots[i].Kind = SlotPlaceholder
	}
	return slots
}
