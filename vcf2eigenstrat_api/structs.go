package vcf2eigenstrat_api

import "fmt"

// The dosage of one sample at one site: the number of alternate allele
// copies carried by that sample
type Dosage int8

const (
	// The sample carries no alternate alleles (homozygous reference)
	DosageRef Dosage = 0

	// The sample carries one alternate allele (heterozygous)
	DosageHet Dosage = 1

	// The sample carries two alternate alleles (homozygous alternate)
	DosageHomAlt Dosage = 2

	// The dosage of the sample could not be determined
	DosageMissing Dosage = -1
)

// Flip swaps the reference and alternate orientation of a dosage.
// Missing stays missing and any value outside the four legal dosages
// becomes missing instead of raising an error.
func (d Dosage) Flip() Dosage {
	switch d {
	case DosageRef:
		return DosageHomAlt
	case DosageHet:
		return DosageHet
	case DosageHomAlt:
		return DosageRef
	default:
		return DosageMissing
	}
}

// A struct representing one position of the reference SNP panel (one line
// of an Eigenstrat .snp file)
type SnpRecord struct {
	// The identifier of the SNP (e.g. an rsID)
	Id string

	// The chromosome of the SNP
	Chromosome string

	// The genetic position of the SNP in Morgans
	GeneticPos float64

	// The 1-based physical position of the SNP
	Pos int64

	// The reference allele of the SNP (a single base)
	Ref string

	// The alternate allele of the SNP (a single base)
	Alt string
}

// A struct representing a biallelic single-nucleotide variant read from
// the input VCF file
type VcfVariant struct {
	// The chromosome of the variant
	Chromosome string

	// The 1-based position of the variant
	Pos int64

	// The reference allele of the variant
	Ref string

	// The alternate alleles of the variant
	Alt []string

	// The genotype of every sample as VCF allele indexes
	// (0 = reference, >0 = alternate, negative = missing)
	Genotypes [][]int
}

// Dosages converts the per-sample genotypes of the variant into dosages.
// An empty genotype or one containing a missing allele gives a missing
// dosage. A genotype with more than two alleles cannot be represented as
// a dosage and is reported as an error.
func (v *VcfVariant) Dosages() ([]Dosage, error) {
	dosages := make([]Dosage, len(v.Genotypes))
	for i, genotype := range v.Genotypes {
		if len(genotype) == 0 {
			dosages[i] = DosageMissing
			continue
		}
		if len(genotype) > 2 {
			return nil, fmt.Errorf("unexpected ploidy %d for sample %d at %s:%d", len(genotype), i+1, v.Chromosome, v.Pos)
		}
		dosage := DosageRef
		for _, allele := range genotype {
			if allele < 0 {
				dosage = DosageMissing
				break
			}
			if allele > 0 {
				dosage++
			}
		}
		dosages[i] = dosage
	}
	return dosages, nil
}

// A struct representing one output site with its per-sample dosages,
// oriented to the reference panel when a panel is in use
type NormalizedRecord struct {
	// The chromosome of the site
	Chromosome string

	// The genetic position of the site in Morgans
	// Zero when no reference panel is in use
	GeneticPos float64

	// The 1-based position of the site
	Pos int64

	// The reference allele of the site
	Ref string

	// The alternate allele of the site
	Alt string

	// One dosage per sample
	Dosages []Dosage
}

// The categorical genotype call of one sample at one site
type GenotypeCall int

const (
	HomRef GenotypeCall = iota
	Het
	HomAlt
	MissingCall
)

// A struct representing the site descriptor of an output record
type EigenstratSite struct {
	// The identifier of the site, derived as "<chromosome>_<position>"
	Id string

	// The chromosome label of the site in the output
	Chromosome string

	// The genetic position of the site in Morgans
	GeneticPos float64

	// The 1-based position of the site
	Pos int64

	// The reference allele of the site
	Ref string

	// The alternate allele of the site
	Alt string
}

// A struct representing one fully encoded output record
type GenotypeRecord struct {
	// The site descriptor of the record
	Site EigenstratSite

	// One categorical call per sample
	Calls []GenotypeCall
}
