package record

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelforge.ai/internal/engine/voxel"
)

// Header is the plain-JSON first line of a record file, readable without
// decoding the gob payload.
type Header struct {
	Version   int    `json:"version"`
	RequestID string `json:"request_id,omitempty"`
	Category  string `json:"category"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

// BuildRecord captures one build completely: the request parameters and
// the world-space placement list, enough to replay the build later.
type BuildRecord struct {
	Header Header `json:"header"`

	Position voxel.Vec3i   `json:"position"`
	Rotation int           `json:"rotation"`
	FlipX    bool          `json:"flip_x,omitempty"`
	FlipY    bool          `json:"flip_y,omitempty"`
	FlipZ    bool          `json:"flip_z,omitempty"`
	Size     voxel.Vec3i   `json:"size"`
	Palette  voxel.Palette `json:"palette"`
	Seed     int64         `json:"seed,omitempty"`

	Placements []voxel.Placement `json:"placements"`
}

// Write stores a record under dir and returns its path. Records are
// zstd-compressed: one JSON header line, then the gob payload.
func Write(dir string, rec BuildRecord) (string, error) {
	if rec.Header.Version == 0 {
		rec.Header.Version = 1
	}
	if rec.Header.CreatedAt == "" {
		rec.Header.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("build-%s-%d.rec.zst", rec.Header.Kind, time.Now().UnixNano())
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}

	err = encodeRecord(f, &rec)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A short write must not leave a truncated record behind.
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// encodeRecord writes the compressed stream: one JSON header line, then
// the gob payload. Flush and close failures are reported.
func encodeRecord(w io.Writer, rec *BuildRecord) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(rec.Header)
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(rec); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read loads a record file written by Write.
func Read(path string) (BuildRecord, error) {
	var rec BuildRecord
	f, err := os.Open(path)
	if err != nil {
		return rec, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return rec, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Skip the header line; the gob payload repeats it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&rec); err != nil {
		return rec, fmt.Errorf("gob decode: %w", err)
	}
	return rec, nil
}

// ReadHeader decodes only the JSON header line of a record file.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReaderSize(dec, 64*1024).ReadBytes('\n')
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("record header: %w", err)
	}
	return h, nil
}
