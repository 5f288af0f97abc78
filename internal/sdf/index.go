package sdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/h1w0xxx/molrec/internal/molecule"
)

// ErrEmptyIndex is returned when an index has no offsets to pick from.
var ErrEmptyIndex = errors.New("index is empty")

// IndexPath returns the conventional index file name for an SD file.
func IndexPath(sdfPath string) string {
	return strings.TrimSuffix(sdfPath, ".sdf") + ".index"
}

// BuildIndex returns the byte offset at which each molecule in r starts.
func BuildIndex(r io.Reader) ([]int64, error) {
	br := bufio.NewReader(r)
	var (
		offsets []int64
		pos     int64
		start   int64
		pending bool
	)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if strings.TrimSpace(line) == RecordSeparator {
				if pending {
					offsets = append(offsets, start)
				}
				pending = false
				start = pos + int64(len(line))
			} else if strings.TrimSpace(line) != "" {
				pending = true
			}
			pos += int64(len(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if pending {
		offsets = append(offsets, start)
	}
	return offsets, nil
}

// WriteIndex writes one ASCII offset per line.
func WriteIndex(w io.Writer, offsets []int64) error {
	bw := bufio.NewWriter(w)
	for _, off := range offsets {
		if _, err := fmt.Fprintln(bw, off); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadIndex reads an index file written by WriteIndex. Blank lines are
// skipped; a malformed or negative offset names its 1-based line.
func LoadIndex(idxPath string) ([]int64, error) {
	f, err := os.Open(idxPath)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	defer f.Close()

	var offsets []int64
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		field := strings.TrimSpace(sc.Text())
		if field == "" {
			continue
		}
		off, err := strconv.ParseInt(field, 10, 64)
		if err != nil || off < 0 {
			return nil, fmt.Errorf("%s:%d: bad offset %q", idxPath, n, field)
		}
		offsets = append(offsets, off)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read index %s: %w", idxPath, err)
	}
	return offsets, nil
}

// ReadMolAt returns the record of an SD file starting at byte offset off,
// without its $$$$ terminator. The last record may end at EOF instead.
func ReadMolAt(sdfPath string, off int64) (string, error) {
	f, err := os.Open(sdfPath)
	if err != nil {
		return "", fmt.Errorf("read molecule: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return "", fmt.Errorf("%s@%d: %w", sdfPath, off, err)
	}

	var sb strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == RecordSeparator {
			return sb.String(), nil
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("%s@%d: %w", sdfPath, off, err)
	}
	return sb.String(), nil
}

// ParseMolAt parses the molecule starting at byte offset off of an SD file.
func ParseMolAt(sdfPath string, off int64, opts Options) (*molecule.Molecule, error) {
	text, err := ReadMolAt(sdfPath, off)
	if err != nil {
		return nil, err
	}
	mol, err := ParseMolBlock(text, opts)
	if err != nil {
		return nil, fmt.Errorf("%s@%d: %w", sdfPath, off, err)
	}
	return mol, nil
}

// PickRandom parses a randomly chosen molecule of an indexed SD file.
func PickRandom(sdfPath string, offsets []int64, rng *rand.Rand, opts Options) (*molecule.Molecule, error) {
	if len(offsets) == 0 {
		return nil, ErrEmptyIndex
	}
	return ParseMolAt(sdfPath, offsets[rng.Intn(len(offsets))], opts)
}
