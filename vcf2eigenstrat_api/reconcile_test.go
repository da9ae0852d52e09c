package vcf2eigenstrat_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelSnp() *SnpRecord {
	return &SnpRecord{
		Id:         "rs123",
		Chromosome: "1",
		GeneticPos: 0.01,
		Pos:        100,
		Ref:        "A",
		Alt:        "G",
	}
}

func observedVariant(ref string, alt []string, genotypes [][]int) *VcfVariant {
	return &VcfVariant{
		Chromosome: "1",
		Pos:        100,
		Ref:        ref,
		Alt:        alt,
		Genotypes:  genotypes,
	}
}

func TestReconcileMatchingOrientation(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 3}
	variant := observedVariant("A", []string{"G"}, [][]int{{0, 0}, {0, 1}, {1, 1}})

	record, err := reconciler.Reconcile(panelSnp(), variant)
	require.NoError(t, err)
	assert.Equal(t, "1", record.Chromosome)
	assert.Equal(t, int64(100), record.Pos)
	assert.Equal(t, "A", record.Ref)
	assert.Equal(t, "G", record.Alt)
	assert.Equal(t, 0.01, record.GeneticPos)
	assert.Equal(t, []Dosage{DosageRef, DosageHet, DosageHomAlt}, record.Dosages)
}

func TestReconcileSwappedOrientationFlips(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 3}
	variant := observedVariant("G", []string{"A"}, [][]int{{0, 0}, {0, 1}, {1, 1}})

	record, err := reconciler.Reconcile(panelSnp(), variant)
	require.NoError(t, err)

	// The panel orientation wins and the dosages are flipped
	assert.Equal(t, "A", record.Ref)
	assert.Equal(t, "G", record.Alt)
	assert.Equal(t, []Dosage{DosageHomAlt, DosageHet, DosageRef}, record.Dosages)
}

func TestReconcileAlleleMismatchGivesMissing(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 2}
	variant := observedVariant("C", []string{"T"}, [][]int{{0, 0}, {1, 1}})

	record, err := reconciler.Reconcile(panelSnp(), variant)
	require.NoError(t, err)
	assert.Equal(t, "A", record.Ref)
	assert.Equal(t, "G", record.Alt)
	assert.Equal(t, []Dosage{DosageMissing, DosageMissing}, record.Dosages)
}

func TestReconcileMultiAllelicGivesMissing(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 2}
	variant := observedVariant("A", []string{"G", "T"}, [][]int{{0, 1}, {1, 2}})

	record, err := reconciler.Reconcile(panelSnp(), variant)
	require.NoError(t, err)
	assert.Equal(t, []Dosage{DosageMissing, DosageMissing}, record.Dosages)
}

func TestReconcileChromosomeMismatchFails(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 1}
	variant := observedVariant("A", []string{"G"}, [][]int{{0, 0}})
	variant.Chromosome = "2"

	_, err := reconciler.Reconcile(panelSnp(), variant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromosome")
}

func TestReconcileSampleCountMismatchFails(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 4}
	variant := observedVariant("A", []string{"G"}, [][]int{{0, 0}, {1, 1}})

	_, err := reconciler.Reconcile(panelSnp(), variant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "genotypes")
}

func TestReconcileMalformedGenotypeFails(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 1}
	variant := observedVariant("A", []string{"G"}, [][]int{{0, 0, 1}})

	_, err := reconciler.Reconcile(panelSnp(), variant)
	require.Error(t, err)
}

func TestReconcilePanelOnlyWithRefBase(t *testing.T) {
	// Base 100 of the sequence equals the panel reference allele
	refSeq := make([]byte, 200)
	for i := range refSeq {
		refSeq[i] = 'N'
	}
	refSeq[99] = 'A'

	reconciler := &Reconciler{SampleCount: 3, RefSeq: refSeq}
	record, err := reconciler.Reconcile(panelSnp(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Dosage{DosageRef, DosageRef, DosageRef}, record.Dosages)
}

func TestReconcilePanelOnlyWithAltBase(t *testing.T) {
	refSeq := make([]byte, 200)
	for i := range refSeq {
		refSeq[i] = 'N'
	}
	refSeq[99] = 'G'

	reconciler := &Reconciler{SampleCount: 2, RefSeq: refSeq}
	record, err := reconciler.Reconcile(panelSnp(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Dosage{DosageHomAlt, DosageHomAlt}, record.Dosages)
}

func TestReconcilePanelOnlyWithOtherBase(t *testing.T) {
	refSeq := make([]byte, 200)
	for i := range refSeq {
		refSeq[i] = 'T'
	}

	reconciler := &Reconciler{SampleCount: 2, RefSeq: refSeq}
	record, err := reconciler.Reconcile(panelSnp(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Dosage{DosageMissing, DosageMissing}, record.Dosages)
}

func TestReconcilePanelOnlyWithoutRefSeq(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 2}
	record, err := reconciler.Reconcile(panelSnp(), nil)
	require.NoError(t, err)
	assert.Equal(t, "A", record.Ref)
	assert.Equal(t, "G", record.Alt)
	assert.Equal(t, []Dosage{DosageMissing, DosageMissing}, record.Dosages)
}

func TestReconcilePanelOnlyOutsideRefSeq(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 1, RefSeq: []byte("ACGT")}
	record, err := reconciler.Reconcile(panelSnp(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Dosage{DosageMissing}, record.Dosages)
}

func TestReconcileDropsRecordsOutsidePanel(t *testing.T) {
	reconciler := &Reconciler{SampleCount: 1}
	variant := observedVariant("A", []string{"G"}, [][]int{{0, 0}})
	variant.Pos = 200

	record, err := reconciler.Reconcile(nil, variant)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPassThrough(t *testing.T) {
	variant := observedVariant("A", []string{"T"}, [][]int{{0, 0}, {1, 1}})
	record, err := PassThrough(variant, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", record.Chromosome)
	assert.Equal(t, int64(100), record.Pos)
	assert.Equal(t, "A", record.Ref)
	assert.Equal(t, "T", record.Alt)
	assert.Equal(t, []Dosage{DosageRef, DosageHomAlt}, record.Dosages)
}

func TestPassThroughWrongChromosomeFails(t *testing.T) {
	variant := observedVariant("A", []string{"T"}, [][]int{{0, 0}})
	_, err := PassThrough(variant, "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromosome")
}
