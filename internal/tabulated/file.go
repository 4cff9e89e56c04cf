package tabulated

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/pairforce/internal/md"
)

// FromFile parses a whitespace-separated table of "r V F" rows into a Grid.
// Lines whose first non-whitespace character is '#' and blank lines are
// skipped. The file must hold exactly width data rows with r increasing
// uniformly; each r may deviate from its ideal grid point by at most 1e-3.
func FromFile(path string, width int) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabulated: %w", err)
	}
	defer f.Close()
	return parse(path, f, width)
}

func parse(path string, r io.Reader, width int) (*Grid, error) {
	if width < 2 {
		return nil, fmt.Errorf("tabulated: width must be at least 2, got %d", width)
	}
	var (
		rs, vs, fs []float64
		lines      []int
	)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Fields(text)
		if len(cols) != 3 {
			return nil, &md.TableFormatError{
				Path: path, Line: lineNo,
				Reason: fmt.Sprintf("expected 3 columns r V F, got %d", len(cols)),
			}
		}
		row := make([]float64, 3)
		for i, c := range cols {
			v, err := strconv.ParseFloat(c, 64)
			if err != nil {
				return nil, &md.TableFormatError{
					Path: path, Line: lineNo,
					Reason: fmt.Sprintf("column %d is not numeric: %q", i+1, c),
				}
			}
			row[i] = v
		}
		rs = append(rs, row[0])
		vs = append(vs, row[1])
		fs = append(fs, row[2])
		lines = append(lines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tabulated: read %s: %w", path, err)
	}
	if len(rs) != width {
		return nil, &md.TableFormatError{
			Path:   path,
			Reason: fmt.Sprintf("expected %d data rows, found %d", width, len(rs)),
		}
	}
	rmin, rmax := rs[0], rs[width-1]
	if rmax <= rmin {
		return nil, &md.TableFormatError{
			Path:   path,
			Reason: fmt.Sprintf("r values do not increase: first %g, last %g", rmin, rmax),
		}
	}
	dr := (rmax - rmin) / float64(width-1)
	for k, rk := range rs {
		ideal := rmin + float64(k)*dr
		if math.Abs(rk-ideal) > 1e-3 {
			return nil, &md.TableFormatError{
				Path: path, Line: lines[k],
				Reason: fmt.Sprintf("uneven grid spacing: r=%g, expected %g", rk, ideal),
			}
		}
	}
	return &Grid{RMin: rmin, RMax: rmax, V: vs, F: fs, dr: dr}, nil
}

// WriteTable writes the grid in the same "r V F" format FromFile reads,
// with a leading comment line describing the columns.
func (g *Grid) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# r V F"); err != nil {
		return err
	}
	for k := range g.V {
		r := g.RMin + float64(k)*g.dr
		if _, err := fmt.Fprintf(w, "%.10g %.10g %.10g\n", r, g.V[k], g.F[k]); err != nil {
			return err
		}
	}
	return nil
}
