package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter(t *testing.T) {
	f, err := NewFilter("sensor/+/temperature")
	require.NoError(t, err)
	assert.Equal(t, "sensor/+/temperature", f.String())

	_, err = NewFilter("sensor/#/x")
	assert.Error(t, err)
}

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		filter string
		name   string
		want   bool
	}{
		{"sport/tennis/player1/#", "sport/tennis/player1", true},
		{"sport/tennis/player1/#", "sport/tennis/player1/ranking", true},
		{"sport/+", "sport/tennis", true},
		{"sport/+", "sport/tennis/ranking", false},
		{"+/+", "/finance", true},
		{"#", "$SYS/broker/load", false},
		{"+/monitor/Clients", "$SYS/monitor/Clients", false},
		{"$SYS/#", "$SYS/broker/load", true},
		{"$SYS/monitor/+", "$SYS/monitor/Clients", true},
	}
	for _, tt := range tests {
		f, err := NewFilter(tt.filter)
		require.NoError(t, err)
		n := UnsafeName(tt.name)
		assert.Equal(t, tt.want, f.Matches(n), "filter=%q name=%q", tt.filter, tt.name)
	}
}
