package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/sduikit/sdui"
)

// doGet downloads pages concurrently, decodes them and stores each as
// pretty-printed JSON. Decoding before writing catches documents that
// violate the schema.
func doGet(src sdui.Source, names []string, outDir string) error {
	var group errgroup.Group
	for _, name := range names {
		name := name
		group.Go(func() error {
			return getPage(src, name, outDir)
		})
	}
	return group.Wait()
}

func getPage(src sdui.Source, name, outDir string) error {
	fmt.Printf("%v download %q\n", ellipsis, name)
	page, err := sdui.FetchPage(src, name)
	if err != nil {
		fmt.Printf("%v failed to fetch %q: %v\n", crossmark, name, err)
		return err
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, name+".json")
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return err
	}

	fmt.Printf("%v page %q saved as %q\n", checkmark, name, path)
	return nil
}
