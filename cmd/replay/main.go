package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"voxelforge.ai/internal/persistence/record"
	"voxelforge.ai/internal/worldapi"
)

func main() {
	var (
		path     = flag.String("record", "", "record file or directory of .rec.zst files")
		worldURL = flag.String("world_url", "", "world interface base url (empty: inspect only)")
		timeout  = flag.Duration("timeout", 30*time.Second, "world request timeout")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "missing -record")
		os.Exit(2)
	}

	files, err := listRecords(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list records:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no record files found at", *path)
		os.Exit(1)
	}

	var world *worldapi.Client
	if *worldURL != "" {
		world, err = worldapi.New(*worldURL, *timeout, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "world client:", err)
			os.Exit(1)
		}
	}

	for _, f := range files {
		rec, err := record.Read(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		fmt.Printf("record v%d %s/%s pos=%v size=%v rot=%d placements=%d created=%s\n",
			rec.Header.Version, rec.Header.Category, rec.Header.Kind,
			rec.Position, rec.Size, rec.Rotation, len(rec.Placements), rec.Header.CreatedAt)

		if world == nil {
			continue
		}
		placed, failed, err := world.PutBlocks(context.Background(), rec.Placements)
		if err != nil {
			fmt.Fprintln(os.Stderr, "replay:", err)
			os.Exit(1)
		}
		fmt.Printf("replayed %s: placed=%d failed=%d\n", filepath.Base(f), placed, failed)
	}
}

func listRecords(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{path}, nil
	}
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".rec.zst") {
			continue
		}
		out = append(out, filepath.Join(path, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
