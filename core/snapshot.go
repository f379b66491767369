package core

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// DefaultSnapshotThreshold is the normalized mean pixel difference above
// which a comparison fails. Tuned so anti-aliasing jitter passes while real
// layout regressions do not.
const DefaultSnapshotThreshold = 0.004

// CaptureSnapshot writes a full-document raster of the page to outPath,
// creating parent directories as needed.
func CaptureSnapshot(page *rod.Page, outPath string) error {
	logrus.Debug("Capture snapshot: ", outPath)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	bin, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("cannot capture snapshot %s: %v", outPath, err)
	}

	return os.WriteFile(outPath, bin, 0o644)
}

// CompareSnapshot checks this run's capture of name against the stored
// baseline. With update set, or when no baseline exists yet, the current
// image becomes the new baseline and the comparison passes. A difference
// image is persisted to diffDir only when the comparison fails.
func CompareSnapshot(name, baselineDir, currentDir, diffDir string, update bool, threshold float64) error {
	baselinePath := filepath.Join(baselineDir, name+".png")
	currentPath := filepath.Join(currentDir, name+".png")
	diffPath := filepath.Join(diffDir, name+".png")

	// A missing capture is always a bug, never a skip.
	if _, err := os.Stat(currentPath); err != nil {
		return fmt.Errorf("%w: missing current snapshot: %s", ErrAssertionFailed, currentPath)
	}

	if update || !fileExists(baselinePath) {
		logrus.Debugf("Snapshot %s: current accepted as baseline", name)
		return copyFile(currentPath, baselinePath)
	}

	baseline, err := readPNG(baselinePath)
	if err != nil {
		return err
	}
	current, err := readPNG(currentPath)
	if err != nil {
		return err
	}

	if !baseline.Bounds().Size().Eq(current.Bounds().Size()) {
		return fmt.Errorf("%w for %s: %v != %v", ErrSizeMismatch, name,
			baseline.Bounds().Size(), current.Bounds().Size())
	}

	diff, mean := diffImages(baseline, current)
	logrus.Debugf("Snapshot %s: mean difference %.6f", name, mean)

	if mean > threshold {
		if err := writePNG(diffPath, diff); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s (mean=%.6f)", ErrSnapshotMismatch, name, mean)
	}
	return nil
}

// diffImages builds the per-pixel absolute difference over the color
// channels and returns it with the mean difference normalized to [0, 1].
func diffImages(a, b image.Image) (*image.NRGBA, float64) {
	bounds := a.Bounds()
	diff := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	var total uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, _ := a.At(x, y).RGBA()
			br, bg, bb, _ := b.At(x, y).RGBA()

			dr := absDiff8(ar, br)
			dg := absDiff8(ag, bg)
			db := absDiff8(ab, bb)
			total += uint64(dr) + uint64(dg) + uint64(db)

			diff.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.NRGBA{R: dr, G: dg, B: db, A: 255})
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return diff, 0
	}
	mean := float64(total) / (3 * float64(pixels) * 255)
	return diff, mean
}

func absDiff8(a, b uint32) uint8 {
	// RGBA() returns 16-bit, alpha-premultiplied values; screenshots are
	// opaque so the 8-bit channel is the high byte.
	av, bv := a>>8, b>>8
	if av > bv {
		return uint8(av - bv)
	}
	return uint8(bv - av)
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s: %v", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
