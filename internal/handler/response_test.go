package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

func TestToDashboardView_StaleFlag(t *testing.T) {
	d := &usecase.Dashboard{
		Username:    "borja",
		Window:      "7",
		Stats:       model.AggregateStats{Status: model.StatusIn, FilteredHours: 1.5, TotalMinutes: 90},
		Sequence:    2,
		RefreshedAt: time.Now(),
		Stale:       true,
	}

	v := toDashboardView(d)
	assert.True(t, v.Stale)
	assert.Equal(t, "7", v.Window)
	assert.Equal(t, "1h 30m", v.FormattedHours)
	assert.Equal(t, "snapshot", v.Source)

	d.Stale = false
	assert.False(t, toDashboardView(d).Stale)
}
