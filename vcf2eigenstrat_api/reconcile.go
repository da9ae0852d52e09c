package vcf2eigenstrat_api

import "fmt"

// A Reconciler merges the reference panel stream with the observed variant
// stream into normalized dosage records oriented to the panel alleles
type Reconciler struct {
	// The number of samples in the run, fixed by the VCF header
	SampleCount int

	// The bases of the target chromosome for 1-based lookup, or nil when
	// no reference sequence was supplied
	RefSeq []byte
}

// Reconcile turns one merge-join pair into a normalized dosage record.
// At least one of snp and variant must be non-nil. A nil record is
// returned for observed positions absent from the panel: the panel
// defines the complete output site set.
func (r *Reconciler) Reconcile(snp *SnpRecord, variant *VcfVariant) (*NormalizedRecord, error) {
	if snp == nil {
		// Position absent from the panel, drop it
		return nil, nil
	}
	if variant == nil {
		return r.fillFromRefSeq(snp), nil
	}

	dosages, err := variant.Dosages()
	if err != nil {
		return nil, err
	}
	if len(dosages) != r.SampleCount {
		return nil, fmt.Errorf("found %d genotypes at %s:%d, expected %d", len(dosages), variant.Chromosome, variant.Pos, r.SampleCount)
	}
	if variant.Chromosome != snp.Chromosome {
		return nil, fmt.Errorf("chromosome %s of the VCF record at position %d does not match chromosome %s of the snp file", variant.Chromosome, variant.Pos, snp.Chromosome)
	}

	switch {
	case len(variant.Alt) != 1:
		// No defined orientation for a multi-allelic site
		setAllMissing(dosages)
	case variant.Ref == snp.Ref && variant.Alt[0] == snp.Alt:
		// Orientation already matches the panel
	case variant.Ref == snp.Alt && variant.Alt[0] == snp.Ref:
		for i := range dosages {
			dosages[i] = dosages[i].Flip()
		}
	default:
		// Alleles cannot be reconciled with the panel
		setAllMissing(dosages)
	}

	return &NormalizedRecord{
		Chromosome: snp.Chromosome,
		GeneticPos: snp.GeneticPos,
		Pos:        snp.Pos,
		Ref:        snp.Ref,
		Alt:        snp.Alt,
		Dosages:    dosages,
	}, nil
}

// fillFromRefSeq synthesizes dosages for a panel position without an
// observed call. When the reference sequence carries the panel's reference
// allele at that position every sample becomes homozygous reference, when
// it carries the alternate allele every sample becomes homozygous
// alternate, and in every other case the dosages stay missing.
func (r *Reconciler) fillFromRefSeq(snp *SnpRecord) *NormalizedRecord {
	dosage := DosageMissing
	if r.RefSeq != nil && snp.Pos >= 1 && snp.Pos <= int64(len(r.RefSeq)) {
		switch string(r.RefSeq[snp.Pos-1]) {
		case snp.Ref:
			dosage = DosageRef
		case snp.Alt:
			dosage = DosageHomAlt
		}
	}

	dosages := make([]Dosage, r.SampleCount)
	for i := range dosages {
		dosages[i] = dosage
	}
	return &NormalizedRecord{
		Chromosome: snp.Chromosome,
		GeneticPos: snp.GeneticPos,
		Pos:        snp.Pos,
		Ref:        snp.Ref,
		Alt:        snp.Alt,
		Dosages:    dosages,
	}
}

// PassThrough converts an observed variant directly into a normalized
// dosage record using its own alleles. It is used when no reference panel
// is supplied and fails when the record belongs to another chromosome
// than the one the run was configured for.
func PassThrough(variant *VcfVariant, chrom string) (*NormalizedRecord, error) {
	if variant.Chromosome != chrom {
		return nil, fmt.Errorf("found chromosome %s in the VCF at position %d, expected %s", variant.Chromosome, variant.Pos, chrom)
	}
	dosages, err := variant.Dosages()
	if err != nil {
		return nil, err
	}
	return &NormalizedRecord{
		Chromosome: variant.Chromosome,
		Pos:        variant.Pos,
		Ref:        variant.Ref,
		Alt:        variant.Alt[0],
		Dosages:    dosages,
	}, nil
}

func setAllMissing(dosages []Dosage) {
	for i := range dosages {
		dosages[i] = DosageMissing
	}
}
