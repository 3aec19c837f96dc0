// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagespec resolves page-spec strings such as "1,3-5,2" into an
// ascending set of distinct 1-based page numbers.
//
// A page-spec is a comma-separated list of segments. A segment is either a
// single page number or an inclusive range "start-end". Reversed ranges
// ("10-8") are rejected rather than swapped.
package pagespec

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed is matched by every segment parse error via errors.Is.
var ErrMalformed = errors.New("malformed page-spec")

// ErrEmptySpec is returned by Resolve for a blank spec. Callers are expected
// to check IsBlank first and skip the entry.
var ErrEmptySpec = errors.New("empty page-spec")

// MalformedPageError reports a single-page segment that is not a positive integer.
type MalformedPageError struct {
	Segment string
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page %q: want a positive integer", e.Segment)
}

func (e *MalformedPageError) Unwrap() error { return ErrMalformed }

// MalformedRangeError reports a range segment whose endpoints are not
// positive integers, or whose start is greater than its end.
type MalformedRangeError struct {
	Segment string
	Reason  string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("malformed range %q: %s", e.Segment, e.Reason)
}

func (e *MalformedRangeError) Unwrap() error { return ErrMalformed }

// IsBlank reports whether spec is empty or whitespace only.
func IsBlank(spec string) bool {
	return strings.TrimSpace(spec) == ""
}

// Resolve parses spec and returns the union of its pages, deduplicated and
// in ascending order.
func Resolve(spec string) ([]int, error) {
	if IsBlank(spec) {
		return nil, ErrEmptySpec
	}

	seen := make(map[int]struct{})
	for _, raw := range strings.Split(spec, ",") {
		seg := strings.TrimSpace(raw)
		if strings.Contains(seg, "-") {
			start, end, err := parseRange(seg)
			if err != nil {
				return nil, err
			}
			// end may be math.MaxInt, so stop on equality rather than p <= end.
			for p := start; ; p++ {
				seen[p] = struct{}{}
				if p == end {
					break
				}
			}
			continue
		}
		p, err := parsePage(seg)
		if err != nil {
			return nil, &MalformedPageError{Segment: seg}
		}
		seen[p] = struct{}{}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

func parseRange(seg string) (int, int, error) {
	parts := strings.Split(seg, "-")
	if len(parts) != 2 {
		return 0, 0, &MalformedRangeError{Segment: seg, Reason: "want start-end"}
	}
	start, err := parsePage(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &MalformedRangeError{Segment: seg, Reason: "start is not a positive integer"}
	}
	end, err := parsePage(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, &MalformedRangeError{Segment: seg, Reason: "end is not a positive integer"}
	}
	if start > end {
		return 0, 0, &MalformedRangeError{Segment: seg, Reason: fmt.Sprintf("start %d is after end %d", start, end)}
	}
	return start, end, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("page %d is not positive", n)
	}
	return n, nil
}
