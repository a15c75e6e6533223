package qlearn

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/vovakirdan/textdrive/internal/core"
)

const (
	tableEntries = StateCount * ActionCount
	tableBytes   = tableEntries * 8

	// RecordSize is the exact length of a persisted agent:
	// table, epsilon (f64), best score (i32), episodes (u64).
	RecordSize = tableBytes + 8 + 4 + 8
)

// record is the decoded form of a persisted agent.
type record struct {
	q         []float64
	epsilon   float64
	bestScore int32
	episodes  uint64
}

// WriteTo encodes the agent as a little-endian record.
func (a *Agent) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, RecordSize)
	off := 0
	for _, v := range a.q {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(a.epsilon))
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], uint32(a.bestScore))
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], a.episodes)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("qlearn: write table: %w: %w", ErrTableIO, err)
	}
	return int64(n), nil
}

// ReadFrom decodes a record from r. Exactly RecordSize bytes must be
// available; a short read or trailing data is ErrTableSize. On error the agent
// is left unchanged.
func (a *Agent) ReadFrom(r io.Reader) (int64, error) {
	rec, n, err := decode(r)
	if err != nil {
		return n, err
	}
	a.apply(rec)
	return n, nil
}

func decode(r io.Reader) (record, int64, error) {
	buf := make([]byte, RecordSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return record{}, int64(n), fmt.Errorf("qlearn: read table: %w: got %d of %d bytes", ErrTableSize, n, RecordSize)
		}
		return record{}, int64(n), fmt.Errorf("qlearn: read table: %w: %w", ErrTableIO, err)
	}

	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		return record{}, int64(n + m), fmt.Errorf("qlearn: read table: %w: trailing data", ErrTableSize)
	}

	rec := record{q: make([]float64, tableEntries)}
	off := 0
	for i := range rec.q {
		rec.q[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
		off += 8
	}
	rec.epsilon = math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
	off += 8
	rec.bestScore = int32(binary.LittleEndian.Uint32(buf[off:]))
	off += 4
	rec.episodes = binary.LittleEndian.Uint64(buf[off:])
	return rec, int64(n), nil
}

func (a *Agent) apply(rec record) {
	a.q = rec.q
	a.epsilon = rec.epsilon
	a.bestScore = rec.bestScore
	a.episodes = rec.episodes
}

// Save writes the agent to path. The record goes to a temporary file in the
// same directory first and is renamed into place.
func (a *Agent) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("qlearn: create table dir: %w: %w", ErrTableIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("qlearn: create temp table: %w: %w", ErrTableIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	if _, err := a.WriteTo(w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("qlearn: flush table: %w: %w", ErrTableIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("qlearn: close table: %w: %w", ErrTableIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("qlearn: rename table: %w: %w", ErrTableIO, err)
	}
	return nil
}

// Load replaces the agent's table and counters with the record at path.
// On any error the agent keeps its previous state.
func (a *Agent) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("qlearn: open table: %w: %w", ErrTableIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("qlearn: stat table: %w: %w", ErrTableIO, err)
	}
	if info.Size() != RecordSize {
		return fmt.Errorf("qlearn: load %s: %w: %d bytes, want %d", path, ErrTableSize, info.Size(), RecordSize)
	}

	rec, _, err := decode(bufio.NewReader(f))
	if err != nil {
		return err
	}
	a.apply(rec)
	return nil
}

// LoadAgent creates an agent from the table at path.
func LoadAgent(path string, rng core.Rand) (*Agent, error) {
	a := NewAgent(rng)
	if err := a.Load(path); err != nil {
		return nil, err
	}
	return a, nil
}
