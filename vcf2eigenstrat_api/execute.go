package vcf2eigenstrat_api

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
)

// Execute runs one VCF to Eigenstrat conversion
func Execute(Cctx *cli.Context) {
	logger := log.New(os.Stderr, "", 0)
	options := ParseOptions(Cctx)

	input, err := OpenVcf(options.Vcf)
	if err != nil {
		logger.Fatalf("Failed to open the input VCF: %v", err)
	}
	defer input.Close()

	reader, err := NewVariantReader(input)
	if err != nil {
		logger.Fatal(err)
	}
	samples := reader.Samples()

	if err := WriteIndFile(options.OutPrefix, samples, options.Samples); err != nil {
		logger.Fatal(err)
	}

	writer, err := NewEigenstratWriter(options.OutPrefix)
	if err != nil {
		logger.Fatal(err)
	}

	// Filter and encode every normalized record and write it out
	emit := func(record *NormalizedRecord) error {
		if options.TransversionsOnly && IsTransition(record.Ref, record.Alt) {
			return nil
		}
		encoded, err := EncodeRecord(record, options.OutChromosome)
		if err != nil {
			return err
		}
		return writer.Write(encoded)
	}

	if options.SnpFile != "" {
		err = convertWithPanel(options, reader, emit)
	} else {
		err = convertPassThrough(options, reader, emit)
	}
	if err != nil {
		logger.Fatal(err)
	}

	if err := writer.Close(); err != nil {
		logger.Fatal(err)
	}
	logger.Printf("Wrote %d sites for %d samples to %s.geno, %s.snp and %s.ind", writer.Count, len(samples), options.OutPrefix, options.OutPrefix, options.OutPrefix)
}

// convertWithPanel merge-joins the reference panel with the VCF stream
// and reconciles every pair. Both streams must be sorted by position.
func convertWithPanel(options *Options, reader *VariantReader, emit func(*NormalizedRecord) error) error {
	snpFile, err := os.Open(options.SnpFile)
	if err != nil {
		return err
	}
	defer snpFile.Close()
	snpReader := NewSnpReader(snpFile)

	var refSeq []byte
	if options.FillRef != "" {
		refSeq, err = ReadFastaChrom(options.FillRef, options.Chromosome)
		if err != nil {
			return err
		}
	}

	reconciler := &Reconciler{
		SampleCount: len(reader.Samples()),
		RefSeq:      refSeq,
	}

	return OrderedJoin(
		snpReader.Read,
		reader.Read,
		func(snp *SnpRecord) int64 { return snp.Pos },
		func(variant *VcfVariant) int64 { return variant.Pos },
		func(snp *SnpRecord, variant *VcfVariant) error {
			record, err := reconciler.Reconcile(snp, variant)
			if err != nil || record == nil {
				return err
			}
			return emit(record)
		},
	)
}

// convertPassThrough converts the VCF stream 1:1 without a panel
func convertPassThrough(options *Options, reader *VariantReader, emit func(*NormalizedRecord) error) error {
	for {
		variant, err := reader.Read()
		if err != nil {
			return err
		}
		if variant == nil {
			return nil
		}
		record, err := PassThrough(variant, options.Chromosome)
		if err != nil {
			return err
		}
		if err := emit(record); err != nil {
			return err
		}
	}
}
