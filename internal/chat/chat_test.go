package chat

import "testing"

func TestStatusCanAdvance(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusSent, StatusDelivered, true},
		{StatusSent, StatusRead, true},
		{StatusSent, StatusFailed, true},
		{StatusDelivered, StatusRead, true},
		{StatusDelivered, StatusSent, false},
		{StatusRead, StatusDelivered, false},
		{StatusRead, StatusSent, false},
		{StatusFailed, StatusDelivered, false},
		{StatusSent, StatusSent, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanAdvance(tt.to); got != tt.want {
				t.Errorf("CanAdvance(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"all", FilterAll, false},
		{"Unread", FilterUnread, false},
		{" groups ", FilterGroups, false},
		{"pinned", FilterPinned, false},
		{"archived", FilterArchived, false},
		{"starred", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterNextWraps(t *testing.T) {
	f := FilterAll
	for range Filters {
		f = f.Next()
	}
	if f != FilterAll {
		t.Errorf("cycling through all filters ended at %q, want all", f)
	}
	if Filter("bogus").Next() != FilterAll {
		t.Error("unknown filter should cycle back to all")
	}
}

func TestAttachmentValidate(t *testing.T) {
	if err := (Attachment{ID: "a1", Type: TypeImage}).Validate(); err != nil {
		t.Errorf("image attachment: unexpected error %v", err)
	}
	if err := (Attachment{ID: "a2", Type: TypeSticker}).Validate(); err == nil {
		t.Error("sticker attachment should be rejected")
	}
}

func TestOthersExcludesMe(t *testing.T) {
	c := Chat{Participants: []Contact{{ID: "me"}, {ID: "ana"}, {ID: "bo"}}}
	others := c.Others("me")
	if len(others) != 2 || others[0].ID != "ana" || others[1].ID != "bo" {
		t.Errorf("Others(me) = %+v, want [ana bo]", others)
	}
}

func TestDirectChatID(t *testing.T) {
	if got := DirectChatID("ana"); got != "chat-ana" {
		t.Errorf("DirectChatID(ana) = %q, want chat-ana", got)
	}
}
