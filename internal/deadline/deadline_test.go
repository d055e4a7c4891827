package deadline_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avdeeva/task-tracker-bot/internal/deadline"
)

func TestParse(t *testing.T) {
	t.Parallel()

	morning := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		now   time.Time
		want  time.Time
	}{
		{
			name:  "tomorrow word",
			input: "завтра",
			now:   morning,
			want:  time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
		},
		{
			name:  "tomorrow word uppercase with spaces",
			input: "  Завтра ",
			now:   morning,
			want:  time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
		},
		{
			name:  "full date and time",
			input: "25.12.2024 18:00",
			now:   morning,
			want:  time.Date(2024, 12, 25, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only defaults to end of day",
			input: "25.12.2024",
			now:   morning,
			want:  time.Date(2024, 12, 25, 23, 59, 0, 0, time.UTC),
		},
		{
			name:  "time only still ahead today",
			input: "18:00",
			now:   morning,
			want:  time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "time only already passed rolls to tomorrow",
			input: "18:00",
			now:   evening,
			want:  time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC),
		},
		{
			name:  "time equal to now rolls to tomorrow",
			input: "10:00",
			now:   morning,
			want:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := deadline.Parse(tt.input, tt.now)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseBlankMeansNoDeadline(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "   ", "\t"} {
		got, err := deadline.Parse(input, now)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestParseUnparseable(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"not a date",
		"25/12/2024",
		"вчера",
		"25.12.2024 18:00:30",
	} {
		_, err := deadline.Parse(input, now)

		var unparseable *deadline.UnparseableError
		require.True(t, errors.As(err, &unparseable), "input %q: got %v", input, err)
		require.Equal(t, input, unparseable.Input)
	}
}
