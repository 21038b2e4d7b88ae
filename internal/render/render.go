// Package render turns the pipelines' data into PNG figures via go-chart.
// It is the only package that talks to the chart backend; everything it
// consumes arrives as plain series, limits, and matrices.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options size the emitted figures.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	return o
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func writeFile(path string, render func(w io.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := render(file); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
