// Package sdf reads V2000 molfiles and SD files into molecules, one atom or
// bond line at a time through the mdl record parsers.
package sdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/h1w0xxx/molrec/internal/mdl"
	"github.com/h1w0xxx/molrec/internal/molecule"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported molfile version")
	ErrBadCountsLine      = errors.New("bad counts line")
	ErrTruncated          = errors.New("truncated molfile")
)

// RecordSeparator ends each molecule in an SD file.
const RecordSeparator = "$$$$"

type Options struct {
	// AllowSelfBonds accepts and drops bonds from an atom to itself.
	AllowSelfBonds bool
	Logger         *slog.Logger
	// Factory builds atoms; the zero value uses molecule.Factory.
	Factory mdl.AtomFactory
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) factory() mdl.AtomFactory {
	if o.Factory != nil {
		return o.Factory
	}
	return molecule.Factory{}
}

// splitLines splits text on newlines, dropping carriage returns.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// parseCounts reads the atom and bond counts from a counts line.
func parseCounts(line string) (natoms, nbonds int, err error) {
	if len(line) >= 39 && strings.Contains(line[34:39], "V3000") {
		return 0, 0, fmt.Errorf("%w: V3000", ErrUnsupportedVersion)
	}
	if len(line) < 6 {
		return 0, 0, fmt.Errorf("%w: '%s'", ErrBadCountsLine, line)
	}
	natoms, err = strconv.Atoi(strings.TrimSpace(line[0:3]))
	if err != nil || natoms < 0 {
		return 0, 0, fmt.Errorf("%w: atom count '%s'", ErrBadCountsLine, line)
	}
	nbonds, err = strconv.Atoi(strings.TrimSpace(line[3:6]))
	if err != nil || nbonds < 0 {
		return 0, 0, fmt.Errorf("%w: bond count '%s'", ErrBadCountsLine, line)
	}
	return natoms, nbonds, nil
}

// ParseMolBlock parses one molfile: three header lines, the counts line,
// the atom block and the bond block. Anything after the bond block
// (properties, SD data items) is ignored. The first bad record aborts the
// molecule; the returned error names its 1-based line number.
func ParseMolBlock(text string, opts Options) (*molecule.Molecule, error) {
	lines := splitLines(text)
	if len(lines) < 4 {
		return nil, fmt.Errorf("%w: %d lines, need a header and counts line", ErrTruncated, len(lines))
	}

	natoms, nbonds, err := parseCounts(lines[3])
	if err != nil {
		return nil, fmt.Errorf("line 4: %w", err)
	}
	if len(lines) < 4+natoms+nbonds {
		return nil, fmt.Errorf("%w: %d atoms and %d bonds declared, %d lines present", ErrTruncated, natoms, nbonds, len(lines))
	}

	mol := &molecule.Molecule{
		Name:  strings.TrimSpace(lines[0]),
		Atoms: make([]molecule.Atom, 0, natoms),
		Bonds: make([]molecule.Bond, 0, nbonds),
	}

	factory := opts.factory()
	var ar mdl.AtomRecord
	for i := 0; i < natoms; i++ {
		lineNo := 5 + i
		if err := ar.Build(lines[4+i]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		a, err := ar.CreateAtom(factory)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		mol.AddAtom(a)
	}

	bp := mdl.BondParser{AllowSelfBonds: opts.AllowSelfBonds, Logger: opts.logger()}
	for i := 0; i < nbonds; i++ {
		lineNo := 5 + natoms + i
		br, err := bp.Parse(lines[4+natoms+i], natoms)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if br.Atom1 == br.Atom2 {
			continue
		}
		if err := mol.AddBond(br.Atom1, br.Atom2, br.BondOrderForMolecule()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return mol, nil
}

// ReadSDF parses every molecule in an SD file. A molecule that fails to
// parse is skipped and its error, prefixed with the 1-based record number,
// is collected; parsing continues with the next record.
func ReadSDF(r io.Reader, opts Options) ([]*molecule.Molecule, []error) {
	var (
		mols []*molecule.Molecule
		errs []error
		buf  strings.Builder
		n    int
	)
	flush := func() {
		text := buf.String()
		buf.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		n++
		mol, err := ParseMolBlock(text, opts)
		if err != nil {
			opts.logger().Warn("skipping molecule", "record", n, "error", err)
			errs = append(errs, fmt.Errorf("molecule %d: %w", n, err))
			return
		}
		mols = append(mols, mol)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == RecordSeparator {
			flush()
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	// file may not end with $$$$
	flush()
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return mols, errs
}
