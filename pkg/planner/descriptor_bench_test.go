package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
)

// createBenchmarkTree writes numDirs directories of filesPerDir files and
// returns their paths.
func createBenchmarkTree(b *testing.B, fs afero.Fs, numDirs, filesPerDir int) []string {
	b.Helper()

	var paths []string
	for i := 0; i < numDirs; i++ {
		for j := 0; j < filesPerDir; j++ {
			p := fmt.Sprintf("/bench/dir%03d/file%03d.txt", i, j)
			content := fmt.Sprintf("This is file %d in directory %d", j, i)
			if err := afero.WriteFile(fs, p, []byte(content), 0644); err != nil {
				b.Fatalf("Failed to create file: %v", err)
			}
			paths = append(paths, p)
		}
	}
	return paths
}

func BenchmarkBuildDescriptors_Concurrency(b *testing.B) {
	fs := afero.NewMemMapFs()
	paths := createBenchmarkTree(b, fs, 50, 50)

	for _, limit := range []int{1, 4, 16, 64} {
		b.Run(fmt.Sprintf("Limit_%d", limit), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := BuildDescriptors(context.Background(), fs, "/bench", paths, limit); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNewIndex(b *testing.B) {
	fs := afero.NewMemMapFs()
	paths := createBenchmarkTree(b, fs, 100, 100)
	files, err := BuildDescriptors(context.Background(), fs, "/bench", paths, 0)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewIndex(files)
	}
}
