package chat

import (
	"fmt"
	"strings"
)

// Filter narrows the chat list.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterUnread   Filter = "unread"
	FilterGroups   Filter = "groups"
	FilterPinned   Filter = "pinned"
	FilterArchived Filter = "archived"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterUnread, FilterGroups, FilterPinned, FilterArchived}

// ParseFilter converts user input into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q: must be one of all, unread, groups, pinned, archived", s)
}

// Next returns the filter following f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if known == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
