package vcf2eigenstrat_api

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/brentp/vcfgo"
	filetype "gopkg.in/h2non/filetype.v1"
)

// Map columns in the Eigenstrat .snp file to their positions
const (
	snpColId int = iota
	snpColChromosome
	snpColGeneticPos
	snpColPos
	snpColRef
	snpColAlt
	snpColCount
)

// A reader yielding biallelic single-nucleotide variants from a VCF file.
// Indels and multi-allelic sites are skipped here so that only records the
// pipeline can represent as dosages reach it.
type VariantReader struct {
	rdr     *vcfgo.Reader
	samples []string
}

// NewVariantReader wraps an uncompressed VCF stream
func NewVariantReader(input io.Reader) (*VariantReader, error) {
	rdr, err := vcfgo.NewReader(input, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the VCF header: %v", err)
	}
	return &VariantReader{
		rdr:     rdr,
		samples: rdr.Header.SampleNames,
	}, nil
}

// Samples returns the sample names from the VCF header
func (r *VariantReader) Samples() []string {
	return r.samples
}

// Read returns the next biallelic single-nucleotide variant, or nil when
// the input is exhausted
func (r *VariantReader) Read() (*VcfVariant, error) {
	for {
		variant := r.rdr.Read()
		if variant == nil {
			return nil, nil
		}
		if err := r.rdr.Error(); err != nil {
			return nil, fmt.Errorf("malformed VCF record: %v", err)
		}
		if !isBiallelicSnp(variant.Reference, variant.Alternate) {
			continue
		}

		observed := &VcfVariant{
			Chromosome: variant.Chromosome,
			Pos:        int64(variant.Pos),
			Ref:        variant.Reference,
			Alt:        variant.Alternate,
			Genotypes:  make([][]int, len(variant.Samples)),
		}
		for i, sample := range variant.Samples {
			if sample != nil {
				observed.Genotypes[i] = sample.GT
			}
		}
		return observed, nil
	}
}

// isBiallelicSnp reports whether the alleles describe a site with exactly
// one single-base reference and one single-base alternate allele
func isBiallelicSnp(ref string, alt []string) bool {
	if len(ref) != 1 || len(alt) != 1 {
		return false
	}
	return len(alt[0]) == 1 && alt[0] != "."
}

// A streaming reader for Eigenstrat .snp reference panel files
type SnpReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewSnpReader wraps a reference panel stream
func NewSnpReader(input io.Reader) *SnpReader {
	return &SnpReader{scanner: bufio.NewScanner(input)}
}

// Read returns the next panel position, or nil when the input is exhausted
func (r *SnpReader) Read() (*SnpRecord, error) {
	for r.scanner.Scan() {
		r.line++
		fields := strings.Fields(r.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != snpColCount {
			return nil, fmt.Errorf("line %d of the snp file has %d columns, expected %d", r.line, len(fields), snpColCount)
		}

		geneticPos, err := strconv.ParseFloat(fields[snpColGeneticPos], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d of the snp file has an invalid genetic position: %v", r.line, err)
		}
		pos, err := strconv.ParseInt(fields[snpColPos], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d of the snp file has an invalid position: %v", r.line, err)
		}

		return &SnpRecord{
			Id:         fields[snpColId],
			Chromosome: fields[snpColChromosome],
			GeneticPos: geneticPos,
			Pos:        pos,
			Ref:        strings.ToUpper(fields[snpColRef]),
			Alt:        strings.ToUpper(fields[snpColAlt]),
		}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

// OpenVcf opens a VCF file for reading, decompressing it when it is
// bgzip-compressed. An empty path or "-" selects stdin.
func OpenVcf(file string) (io.ReadCloser, error) {
	if file == "" || file == "-" {
		return os.Stdin, nil
	}

	openFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	if !isGzip(file) {
		return openFile, nil
	}
	bgReader, err := bgzf.NewReader(openFile, 1)
	if err != nil {
		openFile.Close()
		return nil, err
	}
	return &bgzfFile{Reader: bgReader, file: openFile}, nil
}

// A bgzf reader that also closes the underlying file
type bgzfFile struct {
	*bgzf.Reader
	file *os.File
}

func (b *bgzfFile) Close() error {
	err := b.Reader.Close()
	if cerr := b.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// isGzip checks the leading bytes of a file for a gzip signature
func isGzip(file string) bool {
	input, err := os.Open(file)
	if err != nil {
		return false
	}
	defer input.Close()
	bb := make([]byte, 100)
	input.Read(bb)
	kind, err := filetype.Match(bb)
	if err != nil {
		return false
	}
	return kind.Extension == "gz"
}

// ReadFastaChrom reads a FASTA file (plain or gzipped) and returns the
// uppercased sequence of the record whose name equals chrom. The name of
// a record is the first whitespace-separated word of its header line.
func ReadFastaChrom(file string, chrom string) ([]byte, error) {
	openFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer openFile.Close()

	var input io.Reader = openFile
	if isGzip(file) {
		gzReader, err := gzip.NewReader(openFile)
		if err != nil {
			return nil, err
		}
		defer gzReader.Close()
		input = gzReader
	}

	var sequence []byte
	inChrom := false
	scanner := bufio.NewScanner(input)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] == '>' {
			if inChrom {
				break
			}
			name := strings.Fields(string(line[1:]))
			inChrom = len(name) > 0 && name[0] == chrom
			continue
		}
		if inChrom {
			sequence = append(sequence, bytes.TrimSpace(line)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !inChrom && sequence == nil {
		return nil, fmt.Errorf("chromosome %s not found in %s", chrom, file)
	}
	return bytes.ToUpper(sequence), nil
}
