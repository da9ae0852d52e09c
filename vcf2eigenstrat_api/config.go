package vcf2eigenstrat_api

import (
	"log"
	"os"

	cli "github.com/urfave/cli/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// The options of one conversion run, immutable once parsed
type Options struct {
	// The input VCF file, stdin when empty
	Vcf string

	// The prefix of the .geno/.snp/.ind output files
	OutPrefix string

	// The chromosome the input VCF is expected to contain
	Chromosome string

	// An optional chromosome label to use in the output instead of the
	// input or panel label
	OutChromosome string

	// An optional Eigenstrat .snp reference panel file
	SnpFile string

	// An optional FASTA file with the target chromosome, used to fill
	// panel positions without an observed call
	FillRef string

	// Only output transversion sites
	TransversionsOnly bool

	// Sex and population annotations for the .ind file
	Samples *SampleConfig
}

// ParseOptions reads and validates the run options from the command line
func ParseOptions(Cctx *cli.Context) *Options {
	logger := log.New(os.Stderr, "", 0)

	options := &Options{
		Vcf:               Cctx.String("vcf"),
		OutPrefix:         Cctx.String("output"),
		Chromosome:        Cctx.String("chromosome"),
		OutChromosome:     Cctx.String("out-chromosome"),
		SnpFile:           Cctx.String("snp-file"),
		FillRef:           Cctx.String("fill-ref"),
		TransversionsOnly: Cctx.Bool("transversions-only"),
		Samples:           ReadSampleConfig(Cctx.String("sample-config")),
	}

	if options.FillRef != "" && options.SnpFile == "" {
		logger.Fatal("--fill-ref is only used to fill positions of a reference panel, please also pass --snp-file")
	}
	return options
}

//
// Config structs
//

// The struct representing the sample annotation file
// The annotation file is a YAML file
type SampleConfig struct {
	// Per-sample annotations, keyed by the sample name from the VCF header
	Samples map[string]SampleAnnotation

	// The annotation to use for samples without an entry in Samples
	Defaults SampleAnnotation
}

// A struct representing the .ind file annotation of one sample
type SampleAnnotation struct {
	// The sex of the sample: M, F or U
	Sex string

	// The population label of the sample
	Population string
}

// ReadSampleConfig reads the sample annotation file, casts it to its
// struct and validates. An empty path gives a config with defaults only.
func ReadSampleConfig(file string) *SampleConfig {
	logger := log.New(os.Stderr, "", 0)

	config := &SampleConfig{}
	if file != "" {
		configFile, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalf("Failed to open the sample annotation file: %v", err)
		}
		if err := yaml.Unmarshal(configFile, config); err != nil {
			logger.Fatalf("Failed to parse the sample annotation file: %v", err)
		}
	}

	config.defineMissing()

	upper := cases.Upper(language.English)
	config.Defaults.Sex = validateSex(upper.String(config.Defaults.Sex))
	for name, annotation := range config.Samples {
		if annotation.Sex == "" {
			annotation.Sex = config.Defaults.Sex
		}
		annotation.Sex = validateSex(upper.String(annotation.Sex))
		if annotation.Population == "" {
			annotation.Population = config.Defaults.Population
		}
		config.Samples[name] = annotation
	}
	return config
}

// Define all missing mandatory fields
func (config *SampleConfig) defineMissing() {
	if config.Samples == nil {
		config.Samples = map[string]SampleAnnotation{}
	}
	if config.Defaults.Sex == "" {
		config.Defaults.Sex = "U"
	}
	if config.Defaults.Population == "" {
		config.Defaults.Population = "Unknown"
	}
}

// Annotation returns the sex and population to write for a sample
func (config *SampleConfig) Annotation(sample string) (string, string) {
	if annotation, ok := config.Samples[sample]; ok {
		return annotation.Sex, annotation.Population
	}
	return config.Defaults.Sex, config.Defaults.Population
}

// validateSex maps an annotation sex value onto M, F or U
func validateSex(sex string) string {
	switch sex {
	case "M", "MALE":
		return "M"
	case "F", "FEMALE":
		return "F"
	case "", "U", "UNKNOWN":
		return "U"
	}
	log.New(os.Stderr, "", 0).Fatalf("Invalid sex '%s' in the sample annotation file, must be one of: M, F, U", sex)
	return ""
}
