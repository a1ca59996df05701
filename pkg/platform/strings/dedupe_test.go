package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "broker list with spaces and dupes",
			in:   []string{" kafka-1:9092 ", "kafka-2:9092", "kafka-1:9092", ""},
			want: []string{"kafka-1:9092", "kafka-2:9092"},
		},
		{
			name: "whitespace only elements dropped",
			in:   []string{"  ", "\t", "a"},
			want: []string{"a"},
		},
		{
			name: "order preserved",
			in:   []string{"c", "a", "b", "a"},
			want: []string{"c", "a", "b"},
		},
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DedupeAndTrim(tc.in))
		})
	}
}
