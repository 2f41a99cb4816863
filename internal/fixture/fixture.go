// Package fixture reads and writes flat binary snapshots of mass points
// for reproducible benchmarking. The format is a little-endian uint64
// count followed by x, y, mass as float32 per point; it has no purpose
// beyond round-tripping position and mass losslessly.
package fixture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/gravity"
)

// maxPoints bounds the count header so a corrupt file cannot trigger an
// absurd allocation.
const maxPoints = 1 << 26

func Write(w io.Writer, points []gravity.MassPoint) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(points))); err != nil {
		return fmt.Errorf("fixture: write count: %w", err)
	}

	buf := make([]float32, 0, len(points)*3)
	for _, p := range points {
		buf = append(buf, p.Pos.X, p.Pos.Y, p.Mass)
	}
	if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
		return fmt.Errorf("fixture: write points: %w", err)
	}
	return nil
}

func Read(r io.Reader) ([]gravity.MassPoint, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("fixture: read count: %w", err)
	}
	if count > maxPoints {
		return nil, fmt.Errorf("fixture: implausible point count %d", count)
	}

	buf := make([]float32, count*3)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("fixture: read points: %w", err)
	}

	points := make([]gravity.MassPoint, count)
	for i := range points {
		points[i] = gravity.MassPoint{
			Pos:  gravity.Vec2{X: buf[i*3], Y: buf[i*3+1]},
			Mass: buf[i*3+2],
		}
	}
	return points, nil
}

func Save(path string, points []gravity.MassPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fixture: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Write(w, points); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("fixture: %w", err)
	}
	return f.Close()
}

func Load(path string) ([]gravity.MassPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}
