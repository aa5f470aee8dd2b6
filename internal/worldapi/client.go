package worldapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voxelforge.ai/internal/engine/terrain"
	"voxelforge.ai/internal/engine/voxel"
)

// Client talks to the HTTP world interface: block placement, region
// reads, and the declared build area.
type Client struct {
	base       string
	batchSize  int
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration, batchSize int) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %s", baseURL)
	}
	if batchSize <= 0 {
		batchSize = 512
	}
	return &Client{
		base:      baseURL,
		batchSize: batchSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type blockEntry struct {
	X      int               `json:"x"`
	Y      int               `json:"y"`
	Z      int               `json:"z"`
	ID     string            `json:"id"`
	States map[string]string `json:"states,omitempty"`
	Data   string            `json:"data,omitempty"`
}

type putResult struct {
	Status int `json:"status"`
}

// PutBlocks forwards placements in request order, chunked by the batch
// size. It returns per-block placed/failed counts; an error means the
// remainder of the list was never sent.
func (c *Client) PutBlocks(ctx context.Context, placements []voxel.Placement) (placed, failed int, err error) {
	for start := 0; start < len(placements); start += c.batchSize {
		end := start + c.batchSize
		if end > len(placements) {
			end = len(placements)
		}
		p, f, err := c.putBatch(ctx, placements[start:end])
		placed += p
		failed += f
		if err != nil {
			return placed, failed, err
		}
	}
	return placed, failed, nil
}

func (c *Client) putBatch(ctx context.Context, batch []voxel.Placement) (int, int, error) {
	entries := make([]blockEntry, len(batch))
	for i, p := range batch {
		entries[i] = blockEntry{
			X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z,
			ID:     p.Block.ID,
			States: p.Block.States,
			Data:   p.Block.Data,
		}
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+"/blocks", bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("put blocks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("put blocks: status %d", resp.StatusCode)
	}

	var results []putResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("put blocks response: %w", err)
	}
	placed, failed := 0, 0
	for _, r := range results {
		if r.Status == 1 {
			placed++
		} else {
			failed++
		}
	}
	// World interfaces that ack without per-block results count as all
	// placed.
	if len(results) == 0 {
		placed = len(batch)
	}
	return placed, failed, nil
}

type fetchedBlock struct {
	X      int               `json:"x"`
	Y      int               `json:"y"`
	Z      int               `json:"z"`
	ID     string            `json:"id"`
	States map[string]string `json:"states,omitempty"`
	Data   string            `json:"data,omitempty"`
}

// FetchSlice reads every block of a region. Coordinates the interface
// omits come back as air.
func (c *Client) FetchSlice(ctx context.Context, r voxel.Region) (*terrain.Slice, error) {
	size := r.Size()
	q := url.Values{}
	q.Set("x", fmt.Sprint(r.Min.X))
	q.Set("y", fmt.Sprint(r.Min.Y))
	q.Set("z", fmt.Sprint(r.Min.Z))
	q.Set("dx", fmt.Sprint(size.X))
	q.Set("dy", fmt.Sprint(size.Y))
	q.Set("dz", fmt.Sprint(size.Z))
	q.Set("includeState", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/blocks?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch blocks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch blocks: status %d", resp.StatusCode)
	}

	var fetched []fetchedBlock
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, fmt.Errorf("fetch blocks response: %w", err)
	}

	blocks := make([]voxel.BlockSpec, r.Volume())
	for i := range blocks {
		blocks[i] = voxel.BlockSpec{ID: "air"}
	}
	for _, b := range fetched {
		p := voxel.Vec3i{X: b.X, Y: b.Y, Z: b.Z}
		if !r.Contains(p) {
			continue
		}
		i := ((p.Y-r.Min.Y)*size.Z+(p.Z-r.Min.Z))*size.X + (p.X - r.Min.X)
		blocks[i] = voxel.BlockSpec{ID: b.ID, States: b.States, Data: b.Data}
	}
	return terrain.NewSlice(r, blocks)
}

type buildAreaResponse struct {
	XFrom int `json:"xFrom"`
	YFrom int `json:"yFrom"`
	ZFrom int `json:"zFrom"`
	XTo   int `json:"xTo"`
	YTo   int `json:"yTo"`
	ZTo   int `json:"zTo"`
}

// BuildArea returns the region the world has designated for building.
func (c *Client) BuildArea(ctx context.Context) (voxel.Region, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/buildarea", nil)
	if err != nil {
		return voxel.Region{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return voxel.Region{}, fmt.Errorf("build area: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return voxel.Region{}, fmt.Errorf("build area: status %d", resp.StatusCode)
	}

	var ba buildAreaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ba); err != nil {
		return voxel.Region{}, fmt.Errorf("build area response: %w", err)
	}
	return voxel.Region{
		Min: voxel.Vec3i{X: ba.XFrom, Y: ba.YFrom, Z: ba.ZFrom},
		Max: voxel.Vec3i{X: ba.XTo, Y: ba.YTo, Z: ba.ZTo},
	}, nil
}

// Command runs one server console command and returns its raw output.
func (c *Client) Command(ctx context.Context, cmd string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/command", strings.NewReader(cmd))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("command: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("command: status %d", resp.StatusCode)
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
