package reference

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kdis-lab/moea-go/pkg/multiobjective/framework"
)

// LoadPoints reads whitespace-separated reference points from a file, one
// point per line, and validates every point against the expected dimension.
// Blank lines and lines starting with '#' are skipped.
func LoadPoints(path string, dim int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference point file: %w", err)
	}
	defer f.Close()

	var points [][]float64
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != dim {
			return nil, framework.Configf("reference-points",
				"%s:%d: expected %d coordinates, got %d", path, line, dim, len(fields))
		}
		p := make([]float64, dim)
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, framework.Configf("reference-points",
					"%s:%d: bad coordinate %q: %v", path, line, field, err)
			}
			p[j] = v
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading reference point file: %w", err)
	}
	if len(points) == 0 {
		return nil, framework.Configf("reference-points", "%s holds no points", path)
	}
	return points, nil
}
