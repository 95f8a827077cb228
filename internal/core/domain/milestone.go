package domain

import "sort"

type MilestoneKey string

// CelebratedSet holds the milestones a habit already celebrated.
// It is a value: methods never mutate the receiver.
type CelebratedSet map[MilestoneKey]struct{}

func NewCelebratedSet(keys ...MilestoneKey) CelebratedSet {
	s := make(CelebratedSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s CelebratedSet) Has(k MilestoneKey) bool {
	_, ok := s[k]
	return ok
}

// With returns a copy of s that also contains keys.
func (s CelebratedSet) With(keys ...MilestoneKey) CelebratedSet {
	out := make(CelebratedSet, len(s)+len(keys))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func (s CelebratedSet) Keys() []MilestoneKey {
	keys := make([]MilestoneKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
