// digest prints a single hash over a directory of generated vectors, so two
// generation runs can be compared at a glance.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/minio/blake2b-simd"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Expected exactly one argument, path of directory to digest")
		os.Exit(1)
	}

	sum, err := digest(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("- %x\n", sum)
}

// digest hashes the relative path and content of every file under rootDir, in lexical order.
func digest(rootDir string) ([]byte, error) {
	h := blake2b.New256()
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s\x00%d\x00", filepath.ToSlash(rel), len(data))
		_, err = h.Write(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
