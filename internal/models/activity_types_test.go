package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityLabel(t *testing.T) {
	tests := map[string]string{
		"running":                 "Run",
		"RUNNING":                 "Run",
		"strength_training":       "Strength",
		"stand_up_paddleboarding": "Stand Up Paddleboarding",
		"kayaking":                "Kayaking",
		"":                        "Activity",
	}
	for in, want := range tests {
		assert.Equal(t, want, ActivityLabel(in), "type key %q", in)
	}
}
