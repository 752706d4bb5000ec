package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	cases := map[uint64]string{
		0:               "0B",
		1023:            "1023B",
		1024:            "1.0KB",
		1536:            "1.5KB",
		5 * 1024 * 1024: "5.0MB",
		3 << 30:         "3.0GB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBytes(in))
	}
}

func TestGetProcessMetrics(t *testing.T) {
	m := GetProcessMetrics()
	assert.Positive(t, m.GoroutineCount)
	assert.Positive(t, m.NumCPU)
	assert.NotEmpty(t, m.GoVersion)
	assert.NotEmpty(t, m.AppMemory.SystemMem)
}
