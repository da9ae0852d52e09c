package main

import (
	"log"
	"os"

	"github.com/apeltzer/sequenceTools/vcf2eigenstrat_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:            "vcf2eigenstrat",
		Usage:           "A tool to convert VCF genotype calls to Eigenstrat format",
		HideHelpCommand: true,
		Version:         "1.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The prefix of the output .geno, .snp and .ind files",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "chromosome",
				Aliases:  []string{"c"},
				Usage:    "The chromosome the input VCF file belongs to",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "vcf",
				Aliases:  []string{"i"},
				Usage:    "The input VCF file (plain or bgzipped), defaults to stdin",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "out-chromosome",
				Usage:    "The chromosome label to write to the output instead of the input label",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "snp-file",
				Aliases:  []string{"s"},
				Usage:    "An Eigenstrat .snp file with reference panel positions, sorted by position. The panel defines the output site set",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "fill-ref",
				Aliases:  []string{"f"},
				Usage:    "A FASTA file with the target chromosome, used to call panel positions missing from the VCF",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "transversions-only",
				Aliases:  []string{"t"},
				Usage:    "Skip transition sites (A<->G and C<->T) in the output",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "sample-config",
				Usage:    "Sample annotation file (YAML) with the sex and population to write to the .ind file",
				Category: "Optional",
			},
		},
		Action: func(Cctx *cli.Context) error {
			vcf2eigenstrat_api.Execute(Cctx)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
