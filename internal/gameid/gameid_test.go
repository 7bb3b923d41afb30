package gameid

import (
	"sort"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, randutil.New(1))

	var ids []string
	for range 10 {
		ids = append(ids, gen.Generate())
		clock.Advance(time.Millisecond)
	}

	assert.True(t, sort.StringsAreSorted(ids), "ids should sort by creation time: %v", ids)
}

func TestGenerateDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(5)).Generate()
	b := NewGenerator(clock, randutil.New(5)).Generate()
	assert.Equal(t, a, b)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", false},
		{"too short", "01h2xcejqt", true},
		{"first char too large", "81h2xcejqtf2nbrexx3vqjhp41", true},
		{"invalid character", "01h2xcejqtf2nbrexx3vqjhpiu", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
