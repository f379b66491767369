package core

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, width, height int, fill color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	require.NoError(t, writePNG(path, img))
}

func snapshotDirs(t *testing.T) (base, current, diff string) {
	t.Helper()
	root := t.TempDir()
	return filepath.Join(root, "baseline"), filepath.Join(root, "current"), filepath.Join(root, "diff")
}

func TestDiffImagesIdentical(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	_, mean := diffImages(img, img)
	assert.Equal(t, 0.0, mean)
}

func TestDiffImagesKnownMean(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	a.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	b.SetNRGBA(0, 0, color.NRGBA{R: 13, G: 23, B: 33, A: 255})

	_, mean := diffImages(a, b)
	assert.Equal(t, float64(9)/(3*255), mean)
}

func TestCompareSnapshotIdentity(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(baseDir, "shot.png"), 20, 10, color.NRGBA{R: 50, G: 60, B: 70, A: 255})
	writeTestPNG(t, filepath.Join(curDir, "shot.png"), 20, 10, color.NRGBA{R: 50, G: 60, B: 70, A: 255})

	// Identical images pass regardless of threshold.
	require.NoError(t, CompareSnapshot("shot", baseDir, curDir, diffDir, false, 0))
	assert.NoFileExists(t, filepath.Join(diffDir, "shot.png"))
}

func TestCompareSnapshotThresholdBoundary(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(baseDir, "shot.png"), 1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	writeTestPNG(t, filepath.Join(curDir, "shot.png"), 1, 1, color.NRGBA{R: 103, G: 103, B: 103, A: 255})

	// Mean is exactly 9/(3*255); an equal threshold must pass (strict >).
	exact := float64(9) / (3 * 255)
	require.NoError(t, CompareSnapshot("shot", baseDir, curDir, diffDir, false, exact))
	assert.NoFileExists(t, filepath.Join(diffDir, "shot.png"))

	// Just below it must fail and persist the diff.
	err := CompareSnapshot("shot", baseDir, curDir, diffDir, false, exact*0.99)
	require.ErrorIs(t, err, ErrSnapshotMismatch)
	assert.Contains(t, err.Error(), "mean=")
	assert.FileExists(t, filepath.Join(diffDir, "shot.png"))
}

func TestCompareSnapshotSizeMismatch(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(baseDir, "shot.png"), 800, 600, color.NRGBA{A: 255})
	writeTestPNG(t, filepath.Join(curDir, "shot.png"), 800, 601, color.NRGBA{A: 255})

	err := CompareSnapshot("shot", baseDir, curDir, diffDir, false, 1)
	require.ErrorIs(t, err, ErrSizeMismatch)
	assert.NoFileExists(t, filepath.Join(diffDir, "shot.png"))
}

func TestCompareSnapshotBootstrap(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(curDir, "shot.png"), 4, 4, color.NRGBA{R: 9, A: 255})

	// No baseline yet: first run establishes ground truth.
	require.NoError(t, CompareSnapshot("shot", baseDir, curDir, diffDir, false, 0))

	baseline, err := os.ReadFile(filepath.Join(baseDir, "shot.png"))
	require.NoError(t, err)
	current, err := os.ReadFile(filepath.Join(curDir, "shot.png"))
	require.NoError(t, err)
	assert.Equal(t, current, baseline)
}

func TestCompareSnapshotUpdateMode(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(baseDir, "shot.png"), 4, 4, color.NRGBA{R: 1, A: 255})
	writeTestPNG(t, filepath.Join(curDir, "shot.png"), 4, 4, color.NRGBA{R: 200, A: 255})

	require.NoError(t, CompareSnapshot("shot", baseDir, curDir, diffDir, true, 0))

	baseline, err := os.ReadFile(filepath.Join(baseDir, "shot.png"))
	require.NoError(t, err)
	current, err := os.ReadFile(filepath.Join(curDir, "shot.png"))
	require.NoError(t, err)
	assert.Equal(t, current, baseline)
}

func TestCompareSnapshotMissingCurrent(t *testing.T) {
	baseDir, curDir, diffDir := snapshotDirs(t)
	writeTestPNG(t, filepath.Join(baseDir, "shot.png"), 4, 4, color.NRGBA{A: 255})

	err := CompareSnapshot("shot", baseDir, curDir, diffDir, false, 1)
	require.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "missing current snapshot")
}
