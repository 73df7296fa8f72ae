package clusterer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"myMovieLab/domain"
)

// WriteArtifacts dumps the cluster analysis to reference files: a readable
// demographic summary and a genre-preference CSV with one row per cluster.
// Purely informational output; the API never reads these back.
func WriteArtifacts(dir string, demographics []domain.ClusterDemographics, genres []domain.ClusterGenres) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}

	if err := writeDemographicSummary(filepath.Join(dir, "demographic_summary.txt"), demographics); err != nil {
		return err
	}

	return writeGenrePreferences(filepath.Join(dir, "genre_preferences.csv"), genres)
}

func writeDemographicSummary(path string, demographics []domain.ClusterDemographics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, d := range demographics {
		fmt.Fprintf(f, "Cluster %d:\n", d.Cluster)
		fmt.Fprintf(f, "  Number of users: %d\n", d.NumUsers)
		fmt.Fprintf(f, "  Average age: %s (std: %s)\n", fmtOpt(d.AgeMean), fmtOpt(d.AgeStd))
		fmt.Fprintf(f, "  Gender distribution: %v\n", d.GenderDist)
		fmt.Fprintf(f, "  Top occupations:\n")
		for _, occ := range d.TopOccupations {
			fmt.Fprintf(f, "    %s: %.3f\n", occ.Name, occ.Share)
		}
		fmt.Fprintln(f)
	}

	return nil
}

func writeGenrePreferences(path string, genres []domain.ClusterGenres) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(genres) == 0 {
		return nil
	}

	header := append([]string{"cluster"}, genres[0].GenreOrder...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	for _, g := range genres {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(g.Cluster))
		for _, name := range g.GenreOrder {
			mean := g.GenreMeans[name]
			if mean == nil {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(*mean, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
