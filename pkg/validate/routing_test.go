package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/validate"
)

func routedTo(source, target string) records.RoutingEntry {
	return records.RoutingEntry{
		RoomNo: source,
		Transactions: []records.RoutingTransaction{
			{Direction: records.RoutedTo, CounterpartyRoom: target},
			{Direction: records.RoutedTo, CounterpartyRoom: target},
			{Direction: records.RoutedFrom, CounterpartyName: "ignored"},
		},
	}
}

func TestRoutingComments(t *testing.T) {
	rules := validate.DefaultRules()

	tests := []struct {
		name    string
		inhouse []records.GuestRecord
		routing []records.RoutingEntry
		want    int
		room    string
		message string
	}{
		{
			name: "comment lists the routed guest",
			inhouse: []records.GuestRecord{
				{RoomNo: "0102", Name: "Veli, Ali, BY"},
				{RoomNo: "0101", Name: "Doe, John", Comment: "2 ali veli ve Ayse Kaya"},
			},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    0,
		},
		{
			name: "self route ignored",
			inhouse: []records.GuestRecord{
				{RoomNo: "0101", Name: "Doe, John"},
			},
			routing: []records.RoutingEntry{routedTo("0101", "0101")},
			want:    0,
		},
		{
			name:    "empty source room skipped",
			inhouse: []records.GuestRecord{{RoomNo: "0101", Name: "Doe, John"}},
			routing: []records.RoutingEntry{routedTo("0999", "0101")},
			want:    0,
		},
		{
			name:    "target missing",
			inhouse: []records.GuestRecord{{RoomNo: "0102", Name: "Veli, Ali"}},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    1,
			room:    "0101",
			message: "not in the in-house list",
		},
		{
			name: "comment without marker",
			inhouse: []records.GuestRecord{
				{RoomNo: "0102", Name: "Veli, Ali"},
				{RoomNo: "0101", Name: "Doe, John", Comment: "Ali Veli pays here"},
			},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    1,
			room:    "0101",
			message: "does not start with",
		},
		{
			name: "marker only in a later comment segment",
			inhouse: []records.GuestRecord{
				{RoomNo: "0102", Name: "Veli, Ali"},
				{RoomNo: "0101", Name: "Doe, John", Comment: "VIP || 2 Ali Veli", CommentSegments: []string{"VIP", "2 Ali Veli"}},
			},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    1,
			room:    "0101",
			message: "does not start with",
		},
		{
			name: "marker in the first segment followed by others",
			inhouse: []records.GuestRecord{
				{RoomNo: "0102", Name: "Veli, Ali"},
				{RoomNo: "0101", Name: "Doe, John", CommentSegments: []string{"2 Ali Veli", "VIP"}},
			},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    0,
		},
		{
			name: "name missing from comment",
			inhouse: []records.GuestRecord{
				{RoomNo: "0102", Name: "Veli, Ali"},
				{RoomNo: "0101", Name: "Doe, John", Comment: "2 Ayse Kaya, John Roe"},
			},
			routing: []records.RoutingEntry{routedTo("0102", "0101")},
			want:    1,
			room:    "0101",
			message: "Ali Veli",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.RoutingComments(tt.inhouse, tt.routing, rules)
			require.Len(t, got, tt.want)
			if tt.want == 0 {
				return
			}
			assert.Equal(t, records.RoutingCommentMismatch, got[0].Type)
			assert.Equal(t, tt.room, got[0].RoomNo)
			assert.Contains(t, got[0].Message, tt.message)
		})
	}
}

func TestRoutingCommentsDetails(t *testing.T) {
	got := validate.RoutingComments(
		[]records.GuestRecord{
			{RoomNo: "0102", Name: "Veli, Ali"},
			{RoomNo: "0101", Name: "Doe, John", Comment: "2 Ayse Kaya"},
		},
		[]records.RoutingEntry{routedTo("0102", "0101")},
		validate.Rules{},
	)
	require.Len(t, got, 1)
	assert.Equal(t, "Ali Veli", got[0].Details["expected"])
	assert.Equal(t, "Ayse Kaya", got[0].Details["found"])
	assert.Equal(t, "0102", got[0].Details["source_room"])
}

func TestCommentNames(t *testing.T) {
	got := validate.CommentNames("2 Ali Veli, Ayse Kaya ve John Doe", validate.DefaultRules())
	assert.Equal(t, []string{"Ali Veli", "Ayse Kaya", "John Doe"}, got)
	assert.Empty(t, validate.CommentNames("2 ", validate.DefaultRules()))

	got = validate.CommentNames("2 Ali Veli || VIP", validate.DefaultRules())
	assert.Equal(t, []string{"Ali Veli", "VIP"}, got)
}
