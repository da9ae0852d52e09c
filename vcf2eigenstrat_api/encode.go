package vcf2eigenstrat_api

import "fmt"

// EncodeRecord maps a normalized dosage record to an output genotype
// record. The site identifier is derived from the output chromosome label
// and the position; outChrom overrides the chromosome label of the record
// when it is not empty. A dosage outside the four legal values signals a
// defect in the normalization stage and is reported as an error.
func EncodeRecord(record *NormalizedRecord, outChrom string) (*GenotypeRecord, error) {
	chrom := record.Chromosome
	if outChrom != "" {
		chrom = outChrom
	}

	calls := make([]GenotypeCall, len(record.Dosages))
	for i, dosage := range record.Dosages {
		switch dosage {
		case DosageRef:
			calls[i] = HomRef
		case DosageHet:
			calls[i] = Het
		case DosageHomAlt:
			calls[i] = HomAlt
		case DosageMissing:
			calls[i] = MissingCall
		default:
			return nil, fmt.Errorf("illegal dosage %d at %s:%d", dosage, record.Chromosome, record.Pos)
		}
	}

	return &GenotypeRecord{
		Site: EigenstratSite{
			Id:         fmt.Sprintf("%s_%d", chrom, record.Pos),
			Chromosome: chrom,
			GeneticPos: record.GeneticPos,
			Pos:        record.Pos,
			Ref:        record.Ref,
			Alt:        record.Alt,
		},
		Calls: calls,
	}, nil
}

// IsTransition reports whether the ref/alt pair describes a transition
// (A<->G or C<->T). Every other substitution is a transversion.
func IsTransition(ref string, alt string) bool {
	switch ref + alt {
	case "AG", "GA", "CT", "TC":
		return true
	}
	return false
}
