package presets

import (
	"os"
	"path/filepath"
	"testing"

	"benchgraph/internal/config"
	"benchgraph/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"anno-v1", "anno-v2", "gradle", "multirun"}, src.Names())

	gradle, err := src.Get("gradle")
	require.NoError(t, err)
	require.NotNil(t, gradle.SkipRows)
	assert.Equal(t, 20, *gradle.SkipRows)
	assert.Equal(t, "_cleaned", gradle.Suffix)

	multi, err := src.Get("multirun")
	require.NoError(t, err)
	assert.Equal(t, []string{"FrameTime", "PresentTime"}, multi.Columns)
	require.NotNil(t, multi.OutliersEnabled)
	assert.True(t, *multi.OutliersEnabled)
	require.NotNil(t, multi.OutlierThreshold)
	assert.Equal(t, 10.0, *multi.OutlierThreshold)
}

func TestUnknownPreset(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)

	_, err = src.Get("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anno-v1")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dx12": {"skip_rows": 5, "outlier_policy": "gap"}}`), 0o644))

	src, err := Load(path)
	require.NoError(t, err)

	p, err := src.Get("dx12")
	require.NoError(t, err)
	assert.Equal(t, 5, *p.SkipRows)
	assert.Equal(t, "gap", p.OutlierPolicy)
	assert.Nil(t, p.OutliersEnabled)
	assert.Empty(t, p.Suffix)
}

func TestInvalidDocuments(t *testing.T) {
	_, err := NewSource([]byte(`{"broken": `))
	assert.Error(t, err)

	_, err = NewSource([]byte(`[1, 2]`))
	assert.Error(t, err)

	src, err := NewSource([]byte(`{"bad": {"skip_rows": -4}}`))
	require.NoError(t, err)
	_, err = src.Get("bad")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestApplyOverlaysOnlySetFields(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)
	multirun, err := src.Get("multirun")
	require.NoError(t, err)

	cfg := &config.Config{
		Clean:  config.CleanConfig{SkipRows: 0, OutlierThreshold: 3, OutlierPolicy: "gap"},
		Output: config.OutputConfig{Suffix: "_x"},
		Chart:  config.ChartConfig{Background: "white"},
	}
	multirun.Apply(cfg)

	assert.Equal(t, 20, cfg.Clean.SkipRows)
	assert.True(t, cfg.Clean.OutliersEnabled)
	assert.Equal(t, 10.0, cfg.Clean.OutlierThreshold)
	assert.Equal(t, "gap", cfg.Clean.OutlierPolicy)
	assert.Equal(t, []string{"FrameTime", "PresentTime"}, cfg.Clean.Columns)
	assert.Equal(t, "_output", cfg.Output.Suffix)
	assert.Equal(t, "black", cfg.Chart.Background)
}
