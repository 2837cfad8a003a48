package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		name           string
		client, server string
		wantErr        bool
	}{
		{"same version", "v1.2.0", "v1.2.0", false},
		{"same major", "v1.2.0", "v1.9.3", false},
		{"missing v prefix", "1.0.0", "v1.4.0", false},
		{"major mismatch", "v1.0.0", "v2.0.0", true},
		{"dev client", "(devel)", "v2.0.0", false},
		{"dev server", "v1.0.0", "dev", false},
		{"empty server", "v1.0.0", "", false},
		{"invalid server", "v1.0.0", "banana", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCompatible(tt.client, tt.server)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
