package vcf2eigenstrat_api

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// A writer producing the Eigenstrat .geno and .snp files incrementally,
// one line per site each
type EigenstratWriter struct {
	genoFile *os.File
	snpFile  *os.File
	geno     *bufio.Writer
	snp      *bufio.Writer

	// The number of sites written so far
	Count int
}

// NewEigenstratWriter creates <prefix>.geno and <prefix>.snp
func NewEigenstratWriter(prefix string) (*EigenstratWriter, error) {
	genoFile, err := os.Create(prefix + ".geno")
	if err != nil {
		return nil, fmt.Errorf("failed to create the geno file: %v", err)
	}
	snpFile, err := os.Create(prefix + ".snp")
	if err != nil {
		genoFile.Close()
		return nil, fmt.Errorf("failed to create the snp file: %v", err)
	}
	return &EigenstratWriter{
		genoFile: genoFile,
		snpFile:  snpFile,
		geno:     bufio.NewWriter(genoFile),
		snp:      bufio.NewWriter(snpFile),
	}, nil
}

// Write appends one record to the .geno and .snp files
func (w *EigenstratWriter) Write(record *GenotypeRecord) error {
	snpLine := fmt.Sprintf(
		"%s\t%s\t%s\t%d\t%s\t%s\n",
		record.Site.Id,
		record.Site.Chromosome,
		strconv.FormatFloat(record.Site.GeneticPos, 'f', -1, 64),
		record.Site.Pos,
		record.Site.Ref,
		record.Site.Alt,
	)
	if _, err := w.snp.WriteString(snpLine); err != nil {
		return err
	}

	genoLine := make([]byte, len(record.Calls)+1)
	for i, call := range record.Calls {
		genoLine[i] = genoByte(call)
	}
	genoLine[len(record.Calls)] = '\n'
	if _, err := w.geno.Write(genoLine); err != nil {
		return err
	}

	w.Count++
	return nil
}

// Close flushes and closes both files
func (w *EigenstratWriter) Close() error {
	err := w.geno.Flush()
	if ferr := w.snp.Flush(); err == nil {
		err = ferr
	}
	if cerr := w.genoFile.Close(); err == nil {
		err = cerr
	}
	if cerr := w.snpFile.Close(); err == nil {
		err = cerr
	}
	return err
}

// genoByte returns the Eigenstrat genotype digit of a call: the number of
// reference allele copies, with 9 for missing
func genoByte(call GenotypeCall) byte {
	switch call {
	case HomRef:
		return '2'
	case Het:
		return '1'
	case HomAlt:
		return '0'
	default:
		return '9'
	}
}

// WriteIndFile writes <prefix>.ind with one line per sample. Sex and
// population are taken from the sample configuration when one is given.
func WriteIndFile(prefix string, samples []string, config *SampleConfig) error {
	indFile, err := os.Create(prefix + ".ind")
	if err != nil {
		return fmt.Errorf("failed to create the ind file: %v", err)
	}
	defer indFile.Close()

	writer := bufio.NewWriter(indFile)
	for _, sample := range samples {
		sex, population := config.Annotation(sample)
		if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\n", sample, sex, population); err != nil {
			return err
		}
	}
	return writer.Flush()
}
