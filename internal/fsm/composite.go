package fsm

import (
	"sort"
	"strconv"
	"strings"
)

// encodeIntSet/decodeIntSet encode a set of ints as a canonical sorted
// comma-joined string, giving composite states built from a single
// automaton (Star, Reverse) a structural-equality key for the crawl
// memo rather than relying on pointer identity.
func encodeIntSet(set map[int]struct{}) string {
	ints := make([]int, 0, len(set))
	for v := range set {
		ints = append(ints, v)
	}
	sort.Ints(ints)
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeIntSet(key string) map[int]struct{} {
	set := map[int]struct{}{}
	if key == "" {
		return set
	}
	for _, p := range strings.Split(key, ",") {
		v, _ := strconv.Atoi(p)
		set[v] = struct{}{}
	}
	return set
}

// pair is a (fsmIndex, substate) or (substate, iteration) composite
// member, used by Concatenate and Times.
type pair struct{ A, B int }

func encodePairSet(set map[pair]struct{}) string {
	pairs := make([]pair, 0, len(set))
	for p := range set {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = strconv.Itoa(p.A) + ":" + strconv.Itoa(p.B)
	}
	return strings.Join(parts, ",")
}

func decodePairSet(key string) map[pair]struct{} {
	set := map[pair]struct{}{}
	if key == "" {
		return set
	}
	for _, s := range strings.Split(key, ",") {
		ab := strings.SplitN(s, ":", 2)
		a, _ := strconv.Atoi(ab[0])
		b, _ := strconv.Atoi(ab[1])
		set[pair{a, b}] = struct{}{}
	}
	return set
}

// encodeIntVec encodes a fixed-length per-component state vector, with
// -1 marking a component eliminated ("dead") from the parallel walk.
func encodeIntVec(vec []int) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeIntVec(key string, n int) []int {
	vec := make([]int, n)
	parts := strings.Split(key, ",")
	for i := 0; i < n && i < len(parts); i++ {
		v, _ := strconv.Atoi(parts[i])
		vec[i] = v
	}
	return vec
}
