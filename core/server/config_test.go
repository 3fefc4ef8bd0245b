package server_test

import (
	"testing"
	"time"

	"loadorder-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		port string
		ok   bool
	}{
		{"Default", "8080", true},
		{"Lowest", "1", true},
		{"Highest", "65535", true},
		{"Zero", "0", false},
		{"Too High", "70000", false},
		{"Not A Number", "http", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := server.Config{Port: tt.port}.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, server.Config{ShutdownSeconds: 10}.ShutdownTimeout())
	assert.Equal(t, time.Second, server.Config{}.ShutdownTimeout())
}
