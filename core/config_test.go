package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setEnv(t *testing.T, key, value string) {
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("os.Setenv(%s) failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestNewConfig_timeouts(t *testing.T) {
	setEnv(t, "ENV", "")

	tests := []struct {
		name      string
		smoke     string
		api       string
		wantSmoke time.Duration
		wantAPI   time.Duration
	}{
		{name: "defaults", wantSmoke: 5 * time.Second, wantAPI: 10 * time.Second},
		{name: "bare numbers are milliseconds", smoke: "5000", api: "250", wantSmoke: 5 * time.Second, wantAPI: 250 * time.Millisecond},
		{name: "durations", smoke: "2s", api: "1m", wantSmoke: 2 * time.Second, wantAPI: time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.smoke != "" {
				setEnv(t, "SMOKE_TIMEOUT", tt.smoke)
			} else {
				_ = os.Unsetenv("SMOKE_TIMEOUT")
			}
			if tt.api != "" {
				setEnv(t, "DEV_API_TIMEOUT", tt.api)
			} else {
				_ = os.Unsetenv("DEV_API_TIMEOUT")
			}

			conf := NewConfig()
			assert.Equal(t, tt.wantSmoke, conf.Smoke.Timeout)
			assert.Equal(t, tt.wantAPI, conf.API.Timeout)
		})
	}
}
